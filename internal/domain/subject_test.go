package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectNormalize(t *testing.T) {
	s := &Subject{Name: " Physics ", Code: " phy101 "}
	s.Normalize()
	assert.Equal(t, "Physics", s.Name)
	assert.Equal(t, "PHY101", s.Code)
	assert.Equal(t, DefaultSubjectColor, s.Color)
	assert.NoError(t, s.Validate())
}

func TestSubjectValidate(t *testing.T) {
	cases := []struct {
		name    string
		subject Subject
		ok      bool
	}{
		{"valid", Subject{Name: "Math", Color: "#AABBCC"}, true},
		{"missing name", Subject{Color: "#AABBCC"}, false},
		{"credits too high", Subject{Name: "Math", Credits: 11, Color: "#AABBCC"}, false},
		{"bad color", Subject{Name: "Math", Color: "red"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.subject.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

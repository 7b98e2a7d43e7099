package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/llm"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/alexanderramin/studybuddy/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db          *sql.DB
	uow         db.UnitOfWork
	subjects    *repository.SQLiteSubjectRepo
	assignments *repository.SQLiteAssignmentRepo
	plans       *repository.SQLiteStudyPlanRepo
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		subjects:    repository.NewSQLiteSubjectRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		plans:       repository.NewSQLiteStudyPlanRepo(database),
	}
}

func (e testEnv) seedSubject(t *testing.T, ownerID, name string, opts ...testutil.SubjectOption) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(ownerID, name, opts...)
	require.NoError(t, e.subjects.Create(context.Background(), s))
	return s
}

func (e testEnv) seedAssignment(t *testing.T, ownerID, subjectID, title string, opts ...testutil.AssignmentOption) *domain.Assignment {
	t.Helper()
	a := testutil.NewTestAssignment(ownerID, subjectID, title, opts...)
	require.NoError(t, e.assignments.Create(context.Background(), a))
	return a
}

func (e testEnv) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// scriptedClient is an llm.LLMClient returning a fixed response or error.
// When gate is set, Generate signals entered and then blocks until gate is
// closed.
type scriptedClient struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	lastReq  llm.GenerateRequest
	entered  chan struct{}
	gate     chan struct{}
}

func (c *scriptedClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	c.calls++
	c.lastReq = req
	c.mu.Unlock()

	if c.gate != nil {
		c.entered <- struct{}{}
		<-c.gate
	}
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.response, Model: "gpt-4"}, nil
}

func (c *scriptedClient) Available(context.Context) bool { return c.err == nil }

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type captureUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *captureUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *captureUseCaseObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

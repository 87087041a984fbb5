package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
	"edulink/mocks"
)

func TestOverdueWorker_Sweep(t *testing.T) {
	repo := new(mocks.MockFactureRepo)
	svc := new(mocks.MockFactureService)
	w := service.NewOverdueWorker(repo, svc, service.OverdueWorkerConfig{Interval: time.Hour, Concurrency: 2})

	overdue := []domain.Facture{{ID: uuid.New(), Numero: "A"}, {ID: uuid.New(), Numero: "B"}}
	repo.On("ListOverdue", mock.Anything, mock.AnythingOfType("domain.Date"), 0).Return(overdue, nil)
	svc.On("MarkOverdue", mock.Anything, mock.AnythingOfType("*domain.Facture")).Return(nil).Twice()

	n := w.Sweep(context.Background(), make(chan struct{}, 2))
	w.Wait()

	assert.Equal(t, 2, n)
	svc.AssertExpectations(t)
}

func TestOverdueWorker_Sweep_BacklogLargerThanConcurrency(t *testing.T) {
	repo := new(mocks.MockFactureRepo)
	svc := new(mocks.MockFactureService)
	w := service.NewOverdueWorker(repo, svc, service.OverdueWorkerConfig{Interval: time.Hour, Concurrency: 1})

	overdue := make([]domain.Facture, 5)
	for i := range overdue {
		overdue[i] = domain.Facture{ID: uuid.New(), Numero: fmt.Sprintf("FAC-2024-%05d", i+1)}
	}
	repo.On("ListOverdue", mock.Anything, mock.AnythingOfType("domain.Date"), 0).Return(overdue, nil).Once()
	svc.On("MarkOverdue", mock.Anything, mock.AnythingOfType("*domain.Facture")).Return(nil).Times(5)

	n := w.Sweep(context.Background(), make(chan struct{}, 1))
	w.Wait()

	assert.Equal(t, 5, n)
	repo.AssertExpectations(t)
	svc.AssertExpectations(t)
}

func TestOverdueWorker_Start_StopsOnCancel(t *testing.T) {
	repo := new(mocks.MockFactureRepo)
	svc := new(mocks.MockFactureService)
	w := service.NewOverdueWorker(repo, svc, service.OverdueWorkerConfig{Interval: time.Hour, Concurrency: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	repo.AssertNotCalled(t, "ListOverdue", mock.Anything, mock.Anything, mock.Anything)
}

package impl

import (
	"io"
	"log/slog"

	"pizzeria/internal/domain/repository"
	mockRepo "pizzeria/internal/mocks/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFakeTxManager(factory repository.RepositoryFactory) repository.TransactionManager {
	return &mockRepo.FakeTransactionManager{Factory: factory}
}

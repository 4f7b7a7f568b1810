package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/test"
)

func localConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		StorageBackend:    config.BackendLocal,
		LocalDatabasePath: filepath.Join(dir, "store.db"),
		ReceiptsDir:       filepath.Join(dir, "receipts"),
		PublicBaseURL:     "http://localhost:8080",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOpenLocal(t *testing.T) {
	factory, err := Open(context.Background(), localConfig(t), discardLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer factory.Close()

	ctx := context.Background()
	url, err := factory.Receipts().Upload(ctx, test.PNG, "recibo.png")
	if err != nil || !strings.HasPrefix(url, "http://localhost:8080/receipts/") {
		t.Fatalf("unexpected upload result: %s %v", url, err)
	}

	w := model.Withdrawal{
		ID: "w1", UserID: "u1", UserName: "Ana", RecipientName: "João", NFNumber: "1",
		ImageURL: url, Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := factory.Withdrawals().Save(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := factory.Withdrawals().ListRecent(ctx)
	if err != nil || len(list) != 1 || list[0].ImageURL != url {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}
	if err := factory.Users().Create(ctx, model.User{ID: "u1", Email: "a@b", Level: model.LevelOperator}); err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), &config.Config{StorageBackend: "memory"}, discardLogger()); err == nil {
		t.Fatal("expected error")
	}
}

func TestModuleProvidesRepositoriesAndClosesOnStop(t *testing.T) {
	var (
		users       repository.UserRepository
		withdrawals repository.WithdrawalRepository
		receipts    repository.ReceiptStore
	)
	app := fxtest.New(t,
		fx.Supply(localConfig(t), discardLogger()),
		fx.Provide(func() context.Context { return context.Background() }),
		Module,
		fx.Populate(&users, &withdrawals, &receipts),
	)
	app.RequireStart()
	if users == nil || withdrawals == nil || receipts == nil {
		t.Fatal("expected repositories to be provided")
	}
	app.RequireStop()
}

package email

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"fitstudio/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@fitstudio.com",
		fromName: "FitStudio Team",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
	}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)
	mock.ExpectLLen("emails").SetVal(1)

	svc := newTestService(db)

	err := svc.Send(ctx, "member@example.com", "Member", "Hello", "Test body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBookingConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)
	mock.ExpectLLen("emails").SetVal(1)

	svc := newTestService(db)

	when := time.Now().Add(24 * time.Hour)
	err := svc.SendBookingConfirmation(ctx, "member@example.com", "Member", "Yoga with Coach", when)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBookingCancellation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)
	mock.ExpectLLen("emails").SetVal(1)

	svc := newTestService(db)

	err := svc.SendBookingCancellation(ctx, "member@example.com", "Member", "Yoga with Coach")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen("emails").SetVal(5)

	svc := newTestService(db)

	length := svc.QueueLength(ctx)
	assert.Equal(t, int64(5), length)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(assert.AnError)

	svc := newTestService(db)

	err := svc.Send(ctx, "member@example.com", "Member", "Hello", "Test body")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package contact

import (
	"context"
	"testing"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// memRepo is an in-memory ContactRepository.
type memRepo struct {
	msgs   []*domain.ContactMessage
	nextID int64
}

func newMemRepo() *memRepo { return &memRepo{nextID: 1} }

func (r *memRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	m := *msg
	m.ID = r.nextID
	r.nextID++
	r.msgs = append(r.msgs, &m)
	msg.ID = m.ID
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	for _, m := range r.msgs {
		if m.ID == id {
			out := *m
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) ListByStatus(ctx context.Context, status domain.ContactStatus, limit, offset int) ([]domain.ContactMessage, int64, error) {
	out := make([]domain.ContactMessage, 0)
	for _, m := range r.msgs {
		if m.Status == status && !m.IsReply {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) ListThread(ctx context.Context, threadKey string) ([]domain.ContactMessage, error) {
	out := make([]domain.ContactMessage, 0)
	for _, m := range r.msgs {
		if m.ThreadKey == threadKey {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateThreadStatus(ctx context.Context, threadKey string, status domain.ContactStatus) (int64, error) {
	var n int64
	for _, m := range r.msgs {
		if m.ThreadKey == threadKey {
			m.Status = status
			n++
		}
	}
	return n, nil
}

type replyRecorder struct {
	userIDs []int64
}

func (r *replyRecorder) NotifyContactReply(ctx context.Context, userID, messageID int64, subject string) error {
	r.userIDs = append(r.userIDs, userID)
	return nil
}

func TestContact_Submit_AssignsThreadKey(t *testing.T) {
	repo := newMemRepo()
	service := NewService(repo, nil, nil, nil)

	msg, err := service.Submit(context.Background(), 0, SubmitRequest{
		Name:    "Aizhan",
		Email:   "Aizhan@Example.com",
		Subject: "Broken photos",
		Body:    "Photos on my listing do not load",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ThreadKey)
	assert.Equal(t, domain.ContactOpen, msg.Status)
	assert.Equal(t, "aizhan@example.com", msg.Email)
	assert.Nil(t, msg.UserID)
}

func TestContact_Submit_LinksAccount(t *testing.T) {
	repo := newMemRepo()
	service := NewService(repo, nil, nil, nil)

	msg, err := service.Submit(context.Background(), 3, SubmitRequest{
		Name: "A", Email: "a@b.kz", Subject: "S", Body: "B",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, msg.UserID) {
		assert.Equal(t, int64(3), *msg.UserID)
	}
}

func TestContact_Reply_MarksAnsweredAndNotifies(t *testing.T) {
	repo := newMemRepo()
	rec := &replyRecorder{}
	service := NewService(repo, rec, nil, nil)

	msg, err := service.Submit(context.Background(), 3, SubmitRequest{
		Name: "A", Email: "a@b.kz", Subject: "S", Body: "B",
	})
	assert.NoError(t, err)

	reply, err := service.Reply(context.Background(), msg.ID, 1, "We are on it")

	assert.NoError(t, err)
	assert.True(t, reply.IsReply)
	assert.Equal(t, msg.ThreadKey, reply.ThreadKey)
	assert.Equal(t, []int64{3}, rec.userIDs)

	root, _ := repo.GetByID(context.Background(), msg.ID)
	assert.Equal(t, domain.ContactAnswered, root.Status)
}

func TestContact_Reply_AnonymousSenderNotNotified(t *testing.T) {
	repo := newMemRepo()
	rec := &replyRecorder{}
	service := NewService(repo, rec, nil, nil)

	msg, _ := service.Submit(context.Background(), 0, SubmitRequest{
		Name: "A", Email: "a@b.kz", Subject: "S", Body: "B",
	})

	_, err := service.Reply(context.Background(), msg.ID, 1, "We are on it")

	assert.NoError(t, err)
	assert.Empty(t, rec.userIDs)
}

func TestContact_Reply_ClosedThread(t *testing.T) {
	repo := newMemRepo()
	service := NewService(repo, nil, nil, nil)

	msg, _ := service.Submit(context.Background(), 0, SubmitRequest{
		Name: "A", Email: "a@b.kz", Subject: "S", Body: "B",
	})
	assert.NoError(t, service.Close(context.Background(), msg.ID))

	_, err := service.Reply(context.Background(), msg.ID, 1, "too late")

	assert.ErrorIs(t, err, ErrClosed)
}

func TestContact_GetThread(t *testing.T) {
	repo := newMemRepo()
	service := NewService(repo, nil, nil, nil)

	msg, _ := service.Submit(context.Background(), 0, SubmitRequest{
		Name: "A", Email: "a@b.kz", Subject: "S", Body: "B",
	})
	_, err := service.Reply(context.Background(), msg.ID, 1, "reply one")
	assert.NoError(t, err)

	thread, err := service.GetThread(context.Background(), msg.ID)

	assert.NoError(t, err)
	assert.Len(t, thread, 2)
}

func TestContact_Close_NotFound(t *testing.T) {
	service := NewService(newMemRepo(), nil, nil, nil)

	err := service.Close(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

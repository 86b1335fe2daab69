package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

type tickingClock struct{ t time.Time }

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newBookService(t *testing.T) (*BookService, *fakeStore, *tickingClock) {
	t.Helper()
	store := newFakeStore()
	clock := &tickingClock{t: testNow}
	return NewBookService(&fakeManager{store}, logging.Nop{}).WithClock(clock.Now), store, clock
}

func intPtr(v int) *int { return &v }

var (
	alice = models.Identity{ID: "alice", Name: "Alice", Email: "alice@x.com"}
	bob   = models.Identity{ID: "bob", Name: "Bob", Email: "bob@x.com"}
)

func TestBookService_Create(t *testing.T) {
	s, _, _ := newBookService(t)

	b, err := s.Create(context.Background(), alice, models.BookInput{
		Title: "  Dune ", Author: "Herbert", ISBN: " 978 ", Year: intPtr(1965),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "978", b.ISBN)
	assert.Equal(t, 1965, *b.Year)
	assert.Equal(t, models.StatusToRead, b.Status)
	assert.Equal(t, alice.ID, b.UserID)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
}

func TestBookService_Create_Status(t *testing.T) {
	s, _, _ := newBookService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, alice, models.BookInput{Title: "T", Author: "A", Status: "reading"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReading, b.Status)

	b, err = s.Create(ctx, alice, models.BookInput{Title: "T", Author: "A", Status: "abandoned"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusToRead, b.Status)
}

func TestBookService_Create_Validation(t *testing.T) {
	s, store, _ := newBookService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, alice, models.BookInput{Title: "  ", Author: "A"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.EqualError(t, err, "Title is required")

	_, err = s.Create(ctx, alice, models.BookInput{Title: "T"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.EqualError(t, err, "Author is required")

	assert.Zero(t, store.Calls())
}

func TestBookService_List_NewestFirstAndScoped(t *testing.T) {
	s, _, _ := newBookService(t)
	ctx := context.Background()

	first, err := s.Create(ctx, alice, models.BookInput{Title: "One", Author: "A"})
	require.NoError(t, err)
	second, err := s.Create(ctx, alice, models.BookInput{Title: "Two", Author: "A"})
	require.NoError(t, err)
	_, err = s.Create(ctx, bob, models.BookInput{Title: "Bob's", Author: "B"})
	require.NoError(t, err)

	list, err := s.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	empty, err := s.List(ctx, models.Identity{ID: "carol"})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBookService_OtherOwnerLooksMissing(t *testing.T) {
	s, _, _ := newBookService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, alice, models.BookInput{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	_, err = s.Get(ctx, bob, b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Update(ctx, bob, b.ID, models.BookPatch{Title: models.Set("Mine")})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, s.Delete(ctx, bob, b.ID), common.ErrorNotFound)

	_, err = s.Get(ctx, bob, "does-not-exist")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err := s.Get(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
}

func TestBookService_Update_OnlyStatusChanges(t *testing.T) {
	s, _, _ := newBookService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, alice, models.BookInput{
		Title: "Dune", Author: "Herbert", ISBN: "978", Year: intPtr(1965), Description: "d", Cover: "c",
	})
	require.NoError(t, err)

	u, err := s.Update(ctx, alice, b.ID, models.BookPatch{Status: models.Set("completed")})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, u.Status)
	assert.Equal(t, b.Title, u.Title)
	assert.Equal(t, b.Author, u.Author)
	assert.Equal(t, b.ISBN, u.ISBN)
	assert.Equal(t, b.Year, u.Year)
	assert.Equal(t, b.Description, u.Description)
	assert.Equal(t, b.Cover, u.Cover)
	assert.Equal(t, b.UserID, u.UserID)
	assert.Equal(t, b.CreatedAt, u.CreatedAt)
	assert.True(t, u.UpdatedAt.After(b.UpdatedAt))
}

func TestBookService_Update_UpdatedNeverDecreases(t *testing.T) {
	s, _, clock := newBookService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, alice, models.BookInput{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	// clock steps backwards
	clock.t = testNow.Add(-time.Hour)
	u, err := s.Update(ctx, alice, b.ID, models.BookPatch{Status: models.Set("reading")})
	require.NoError(t, err)
	assert.Equal(t, b.UpdatedAt, u.UpdatedAt)
}

func TestBookService_Update_PatchPolicy(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		patch   models.BookPatch
		wantErr error
		check   func(t *testing.T, b *models.Book)
	}{
		{
			name:    "null title rejected",
			patch:   models.BookPatch{Title: models.Null[string]()},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "blank author rejected",
			patch:   models.BookPatch{Author: models.Set("   ")},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "unknown status rejected",
			patch:   models.BookPatch{Status: models.Set("abandoned")},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "empty status rejected",
			patch:   models.BookPatch{Status: models.Set("")},
			wantErr: common.ErrorValidation,
		},
		{
			name:  "null status resets",
			patch: models.BookPatch{Status: models.Null[string]()},
			check: func(t *testing.T, b *models.Book) { assert.Equal(t, models.StatusToRead, b.Status) },
		},
		{
			name: "null and empty clear optional strings",
			patch: models.BookPatch{
				ISBN: models.Null[string](), Description: models.Set(""), Cover: models.Null[string](),
			},
			check: func(t *testing.T, b *models.Book) {
				assert.Empty(t, b.ISBN)
				assert.Empty(t, b.Description)
				assert.Empty(t, b.Cover)
			},
		},
		{
			name:  "null year clears",
			patch: models.BookPatch{Year: models.Null[int]()},
			check: func(t *testing.T, b *models.Book) { assert.Nil(t, b.Year) },
		},
		{
			name:  "values are trimmed",
			patch: models.BookPatch{Title: models.Set(" Children of Dune "), Year: models.Set(1976)},
			check: func(t *testing.T, b *models.Book) {
				assert.Equal(t, "Children of Dune", b.Title)
				assert.Equal(t, 1976, *b.Year)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newBookService(t)
			b, err := s.Create(ctx, alice, models.BookInput{
				Title: "Dune", Author: "Herbert", ISBN: "978", Year: intPtr(1965),
				Description: "desc", Cover: "http://c", Status: "reading",
			})
			require.NoError(t, err)

			got, err := s.Update(ctx, alice, b.ID, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				stored, gerr := s.Get(ctx, alice, b.ID)
				require.NoError(t, gerr)
				assert.Equal(t, b, stored)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestBookService_Delete(t *testing.T) {
	s, _, _ := newBookService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, alice, models.BookInput{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, alice, b.ID))
	assert.ErrorIs(t, s.Delete(ctx, alice, b.ID), common.ErrorNotFound)

	_, err = s.Get(ctx, alice, b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestBookService_StoreFailureIsInternal(t *testing.T) {
	s, store, _ := newBookService(t)
	store.failWith = errBoom
	ctx := context.Background()

	_, err := s.List(ctx, alice)
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.Create(ctx, alice, models.BookInput{Title: "T", Author: "A"})
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.ErrorIs(t, s.Delete(ctx, alice, "x"), common.ErrorInternal)
}

func TestBookService_EmptyIdentity(t *testing.T) {
	s, store, _ := newBookService(t)

	_, err := s.List(context.Background(), models.Identity{})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.Zero(t, store.Calls())
}

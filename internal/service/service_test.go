package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/deppfellow/galeria-api/internal/config"
	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/deppfellow/galeria-api/internal/model"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/deppfellow/galeria-api/internal/service/servicetest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{Config: config.DefaultConfig(), Logger: &log}
}

func requireNotFound(t *testing.T, err error, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, message, httpErr.Mensagem)
}

func TestImageService_ListEmptyIsNonNil(t *testing.T) {
	svc := NewImageService(testServer(), servicetest.NewImageStore())

	images, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestImageService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewImageService(testServer(), servicetest.NewImageStore())

	created, err := svc.Create(ctx, "http://x/1.png")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Image{ID: 1, LinkImagem: "http://x/1.png"}, *got)
}

func TestImageService_MissingRows(t *testing.T) {
	ctx := context.Background()
	svc := NewImageService(testServer(), servicetest.NewImageStore())

	_, err := svc.Get(ctx, 999)
	requireNotFound(t, err, MsgImageNotFound)

	_, err = svc.Update(ctx, 999, model.ImagePatch{LinkImagem: "x"})
	requireNotFound(t, err, MsgImageNotFound)

	requireNotFound(t, svc.Delete(ctx, 999), MsgImageNotFound)
}

func TestImageService_StoreErrorPassesThrough(t *testing.T) {
	store := servicetest.NewImageStore()
	store.Err = errors.New("connection refused")
	svc := NewImageService(testServer(), store)

	_, err := svc.List(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestAdministratorService_PasswordOnlyUpdateKeepsEmail(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewAdministratorStore()
	svc := NewAdministratorService(testServer(), store)

	created, err := svc.Create(ctx, "a@b.com", "old")
	require.NoError(t, err)
	assert.NotEqual(t, "old", created.SenhaHash)
	assert.True(t, created.CheckPassword("old"))

	updated, err := svc.Update(ctx, created.ID, "", "new")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", updated.Email)
	assert.True(t, updated.CheckPassword("new"))
}

func TestAdministratorService_EmailOnlyUpdateKeepsHash(t *testing.T) {
	ctx := context.Background()
	svc := NewAdministratorService(testServer(), servicetest.NewAdministratorStore())

	created, err := svc.Create(ctx, "a@b.com", "secret")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "c@d.com", "")
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", updated.Email)
	assert.Equal(t, created.SenhaHash, updated.SenhaHash)
}

func TestAdministratorService_OverlongPasswordIsBadRequest(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewAdministratorStore()
	svc := NewAdministratorService(testServer(), store)

	// 40 runes but 80 bytes
	senha := strings.Repeat("é", 40)

	_, err := svc.Create(ctx, "a@b.com", senha)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, MsgSenhaTooLong, httpErr.Mensagem)
	assert.Equal(t, 0, store.Len())

	created, err := svc.Create(ctx, "a@b.com", "secret")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "", senha)
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	stored, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("secret"))
}

func TestContactService_PartialUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewContactStore()
	svc := NewContactService(testServer(), store)

	created, err := svc.Create(ctx, model.Contact{
		ID:        42,
		Instagram: "@galeria",
		Facebook:  "fb/galeria",
		Whatsapp:  "5511999999999",
		Email:     "contato@galeria.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID, "ids are assigned by the store")

	updated, err := svc.Update(ctx, created.ID, model.ContactPatch{Instagram: "@nova"})
	require.NoError(t, err)
	assert.Equal(t, "@nova", updated.Instagram)
	assert.Equal(t, "fb/galeria", updated.Facebook)
	assert.Equal(t, "contato@galeria.com", updated.Email)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 0, store.Len())

	_, err = svc.Get(ctx, created.ID)
	requireNotFound(t, err, MsgContactNotFound)
}

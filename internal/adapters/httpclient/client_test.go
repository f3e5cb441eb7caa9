package httpclient

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xvierd/greet-cli/internal/adapters/httpapi"
	"github.com/xvierd/greet-cli/internal/adapters/memstore"
	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/services"
)

func newClientAgainstServer(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()

	registry := services.NewRegistryService(memstore.New())
	ts := httptest.NewServer(httpapi.New("localhost:0", registry).Router())
	t.Cleanup(ts.Close)

	client, err := New(ts.URL, 5*time.Second)
	require.NoError(t, err)
	return client, ts
}

func TestClient_RetrieveAbsent(t *testing.T) {
	client, _ := newClientAgainstServer(t)

	_, err := client.Retrieve(context.Background(), "Alice")
	require.ErrorIs(t, err, domain.ErrNameNotFound)
}

func TestClient_GenerateThenRetrieve(t *testing.T) {
	client, _ := newClientAgainstServer(t)
	ctx := context.Background()

	generated, err := client.Generate(ctx, "Alice")
	require.NoError(t, err)
	require.True(t, domain.ValidIdentifier(generated))

	retrieved, err := client.Retrieve(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, generated, retrieved)
}

func TestClient_GenerateIsIdempotent(t *testing.T) {
	client, _ := newClientAgainstServer(t)
	ctx := context.Background()

	first, err := client.Generate(ctx, "Bob")
	require.NoError(t, err)
	second, err := client.Generate(ctx, "Bob")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestClient_ValidatesNameLocally(t *testing.T) {
	client, err := New("http://localhost:1", time.Second)
	require.NoError(t, err)

	// No server is listening on the base URL; validation fails before
	// any request is attempted.
	_, err = client.Retrieve(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = client.Generate(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestClient_CachesResolvedNames(t *testing.T) {
	client, ts := newClientAgainstServer(t)
	ctx := context.Background()

	generated, err := client.Generate(ctx, "Alice")
	require.NoError(t, err)

	// The identifier is immutable, so the cached copy keeps answering
	// even after the server goes away.
	ts.Close()

	retrieved, err := client.Retrieve(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, generated, retrieved)

	// An uncached name has to hit the wire and fails.
	_, err = client.Retrieve(ctx, "Bob")
	require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestClient_ServerUnavailable(t *testing.T) {
	client, err := New("http://localhost:1", 500*time.Millisecond)
	require.NoError(t, err)

	_, err = client.Retrieve(context.Background(), "Alice")
	require.ErrorIs(t, err, domain.ErrRegistryUnavailable)

	_, err = client.Generate(context.Background(), "Alice")
	require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestClient_Names(t *testing.T) {
	client, _ := newClientAgainstServer(t)
	ctx := context.Background()

	names, err := client.Names(ctx)
	require.NoError(t, err)
	require.Empty(t, names)

	_, err = client.Generate(ctx, "Alice")
	require.NoError(t, err)
	_, err = client.Generate(ctx, "Bob")
	require.NoError(t, err)

	names, err = client.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Bob"}, names)
}

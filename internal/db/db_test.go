package db

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func exerciseQueries(t *testing.T, ctx context.Context, qry *Queries) {
	t.Helper()

	require.NoError(t, qry.CreateEmployment(ctx, CreateEmploymentParams{Date: "2025-01-01", UnemploymentRate: 4.1}))
	require.NoError(t, qry.CreateEmployment(ctx, CreateEmploymentParams{Date: "2024-12-01", UnemploymentRate: 3.8}))

	employment, err := qry.GetAllEmployment(ctx)
	require.NoError(t, err)
	require.Equal(t, []Employment{
		{Date: "2024-12-01", UnemploymentRate: 3.8},
		{Date: "2025-01-01", UnemploymentRate: 4.1},
	}, employment)

	require.NoError(t, qry.CreateNews(ctx, CreateNewsParams{
		ScrapeDate: "2025-03-11", NewsDate: "3/10/25", Headline: "B", Description: "second in name, first in order",
	}))
	require.NoError(t, qry.CreateNews(ctx, CreateNewsParams{
		ScrapeDate: "2025-03-11", NewsDate: "N/A", Headline: "A", Description: "",
	}))

	news, err := qry.GetAllNews(ctx)
	require.NoError(t, err)
	require.Len(t, news, 2)
	require.Equal(t, "B", news[0].Headline)
	require.Equal(t, "A", news[1].Headline)

	require.NoError(t, qry.DeleteAllNews(ctx))
	require.NoError(t, qry.DeleteAllEmployment(ctx))

	news, err = qry.GetAllNews(ctx)
	require.NoError(t, err)
	require.Empty(t, news)
}

func TestOpenMemory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	database, err := Config{File: ":memory:"}.OpenDB(ctx)
	require.NoError(t, err)
	defer database.Close()

	exerciseQueries(t, ctx, New(database))
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "econ.db")

	database, err := Config{File: path}.OpenDB(ctx)
	require.NoError(t, err)
	require.NoError(t, New(database).CreateEmployment(ctx, CreateEmploymentParams{Date: "2025-01-01", UnemploymentRate: 4.1}))
	require.NoError(t, database.Close())

	// reopening runs the schema again, it must not fail or drop data
	database, err = Config{File: path}.OpenDB(ctx)
	require.NoError(t, err)
	defer database.Close()

	employment, err := New(database).GetAllEmployment(ctx)
	require.NoError(t, err)
	require.Len(t, employment, 1)
}

func TestOpenWithoutTarget(t *testing.T) {
	_, err := Config{}.OpenDB(context.Background())
	require.Error(t, err)
}

func TestMakeTxDiscard(t *testing.T) {
	ctx := context.Background()
	database, err := Config{File: ":memory:"}.OpenDB(ctx)
	require.NoError(t, err)
	defer database.Close()

	makeTx := NewMakeTx(database)
	tx, discard, _, err := makeTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateNews(ctx, CreateNewsParams{Headline: "discarded"}))
	require.NoError(t, discard())

	news, err := New(database).GetAllNews(ctx)
	require.NoError(t, err)
	require.Empty(t, news)

	tx, _, commit, err := makeTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateNews(ctx, CreateNewsParams{Headline: "kept"}))
	require.NoError(t, commit())

	news, err = New(database).GetAllNews(ctx)
	require.NoError(t, err)
	require.Len(t, news, 1)
}

func TestOpenLibsql(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*2)
	defer cancel()

	sqld, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "ghcr.io/tursodatabase/libsql-server:latest",
			ExposedPorts: []string{"8080/tcp"},
			WaitingFor:   wait.ForListeningPort("8080/tcp"),
		},
	})
	if err != nil {
		t.Skipf("could not start libsql-server: %s", err)
	}
	defer func() {
		err := sqld.Terminate(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}()

	endpoint, err := sqld.Endpoint(ctx, "http")
	require.NoError(t, err)

	database, err := Config{Url: endpoint}.OpenDB(ctx)
	require.NoError(t, err)
	defer database.Close()

	exerciseQueries(t, ctx, New(database))
}

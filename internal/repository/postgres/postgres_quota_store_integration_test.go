//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres spins up a Postgres container using testcontainers.
func startPostgres(ctx context.Context, t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	pg, err := tcpostgres.RunContainer(ctx,
		tcpostgres.WithUsername("namesmith"),
		tcpostgres.WithPassword("secret"),
		tcpostgres.WithDatabase("namesmith"),
	)
	if err != nil {
		t.Skipf("skipping: cannot start postgres container (is Docker running?): %v", err)
		return nil, func() {}
	}
	host, _ := pg.Host(ctx)
	port, _ := pg.MappedPort(ctx, "5432")
	dsn := fmt.Sprintf("postgres://namesmith:secret@%s:%s/namesmith?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for {
		if err := pool.Ping(waitCtx); err == nil {
			break
		}
		select {
		case <-waitCtx.Done():
			t.Fatalf("timeout waiting for db ready: %v", waitCtx.Err())
		case <-time.After(250 * time.Millisecond):
		}
	}
	return pool, func() {
		pool.Close()
		_ = pg.Terminate(context.Background())
	}
}

func TestQuotaStore_Postgres(t *testing.T) {
	ctx := context.Background()
	pool, cleanup := startPostgres(ctx, t)
	defer cleanup()

	s := NewQuotaStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	got, err := s.Load(ctx, "absent")
	if err != nil || len(got) != 0 {
		t.Fatalf("absent key: %v %v", got, err)
	}

	if err := s.Save(ctx, "c1", []int64{10, 20}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "c1", []int64{20, 30}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.Load(ctx, "c1")
	if err != nil || len(got) != 2 || got[0] != 20 || got[1] != 30 {
		t.Fatalf("load after overwrite: %v %v", got, err)
	}

	if _, err := pool.Exec(ctx, `INSERT INTO quota_logs (key, timestamps) VALUES ('bad', '{"x":1}'::jsonb)`); err != nil {
		t.Fatalf("seed malformed: %v", err)
	}
	got, err = s.Load(ctx, "bad")
	if err != nil || len(got) != 0 {
		t.Fatalf("malformed row should read empty: %v %v", got, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Update(ctx, "shared", func(cur []int64) []int64 { return append(cur, int64(i)) }); err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()
	got, err = s.Load(ctx, "shared")
	if err != nil {
		t.Fatalf("load shared: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("row lock lost updates: %d entries", len(got))
	}
}

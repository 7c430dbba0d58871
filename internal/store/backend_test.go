package store

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wcatz/gridboard/internal/config"
)

// exerciseStore runs the shared Store contract against a live backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	name := "test-" + uuid.NewString()
	t.Cleanup(func() { s.Delete(context.Background(), name) })

	if _, err := s.Load(ctx, name); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, name, testBoard()); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, name)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, testBoard()) {
		t.Errorf("loaded board = %+v", got)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Errorf("List = %v, missing %s", names, name)
	}

	if err := s.Delete(ctx, name); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, name); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete error = %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("GRIDBOARD_TEST_REDIS")
	if addr == "" {
		t.Skip("GRIDBOARD_TEST_REDIS not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := NewRedisStore(ctx, RedisOptions{Addr: addr, Prefix: "gridboard-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("GRIDBOARD_TEST_MONGO")
	if uri == "" {
		t.Skip("GRIDBOARD_TEST_MONGO not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Database: "gridboard_test", Collection: "boards"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Backend: config.BackendMemory})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("memory backend returned %T", s)
	}
	exerciseStore(t, s)

	s, err = Open(ctx, config.StoreConfig{Backend: config.BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("file backend returned %T", s)
	}
	exerciseStore(t, s)

	if _, err := Open(ctx, config.StoreConfig{Backend: "etcd"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

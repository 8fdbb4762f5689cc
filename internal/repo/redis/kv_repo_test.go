package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestKVRepoSetEncodesValues(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewKVRepo(client)
	ctx := context.Background()

	testCases := []struct {
		name  string
		value any
		want  string
	}{
		{name: "struct", value: struct {
			Token string `json:"token"`
		}{Token: "abc"}, want: `{"token":"abc"}`},
		{name: "serialized json string", value: `{"token":"abc"}`, want: `{"token":"abc"}`},
		{name: "plain string", value: "abc", want: `"abc"`},
		{name: "numeric string", value: "123", want: `123`},
		{name: "raw bytes", value: []byte(`[1,2]`), want: `[1,2]`},
		{name: "map", value: map[string]int{"n": 1}, want: `{"n":1}`},
	}

	for _, tc := range testCases {
		key := "kv:" + tc.name
		if err := repo.Set(ctx, key, tc.value, 0); err != nil {
			t.Fatalf("%s: set: %v", tc.name, err)
		}
		got, err := mr.Get(key)
		if err != nil {
			t.Fatalf("%s: read raw: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: unexpected stored value: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestKVRepoSetAppliesTTL(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewKVRepo(client)
	ctx := context.Background()

	if err := repo.Set(ctx, "ttl:key", map[string]string{"a": "b"}, 1500*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("ttl:key"); ttl <= 0 || ttl > 1500*time.Millisecond {
		t.Fatalf("unexpected ttl: %s", ttl)
	}

	mr.FastForward(2 * time.Second)

	_, ok, err := repo.Get(ctx, "ttl:key")
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if ok {
		t.Fatalf("value should expire after ttl")
	}

	if err := repo.Set(ctx, "ttl:none", "x", -time.Second); err != nil {
		t.Fatalf("set with negative ttl: %v", err)
	}
	if ttl := mr.TTL("ttl:none"); ttl != 0 {
		t.Fatalf("negative ttl must store without expiry, got %s", ttl)
	}
}

func TestKVRepoGetDeleteExists(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewKVRepo(client)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := mr.Set("empty", ""); err != nil {
		t.Fatalf("seed empty value: %v", err)
	}
	if _, ok, err := repo.Get(ctx, "empty"); err != nil || ok {
		t.Fatalf("empty value must be reported absent: ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, "a", `{"x":1}`, 0); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := repo.Set(ctx, "b", `{"x":2}`, 0); err != nil {
		t.Fatalf("set b: %v", err)
	}

	value, ok, err := repo.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("get a: ok=%v err=%v", ok, err)
	}
	if value != `{"x":1}` {
		t.Fatalf("unexpected value: %s", value)
	}

	exists, err := repo.Exists(ctx, "b")
	if err != nil || !exists {
		t.Fatalf("exists b: exists=%v err=%v", exists, err)
	}

	if err := repo.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	exists, err = repo.Exists(ctx, "a")
	if err != nil || exists {
		t.Fatalf("a should be deleted: exists=%v err=%v", exists, err)
	}
	if mr.Exists("b") {
		t.Fatalf("b should be deleted")
	}
}

func TestKVRepoPropagatesConnectivityFailure(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer func() { _ = client.Close() }()
	mr.Close()

	repo := NewKVRepo(client)
	if _, _, err := repo.Get(context.Background(), "any"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
	if err := repo.Set(context.Background(), "any", "1", 0); err == nil {
		t.Fatalf("expected set error when redis is down")
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})

	return mr, client
}

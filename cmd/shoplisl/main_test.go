package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dukerupert/shoplisl/internal/config"
	"github.com/dukerupert/shoplisl/internal/database"
	"github.com/dukerupert/shoplisl/internal/logging"
	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/redis/go-redis/v9"
)

func TestNewServicesTagsComponentOnce(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Set("shoplisl:filter:#1a9edb", "not json")

	var buf bytes.Buffer
	logger := logging.New(&buf, "debug", "text")
	cfg := config.Config{Tenant: config.DefaultTenant, FilterCacheSize: 8, FilterCacheTTL: time.Hour}

	svc, filters := newServices(cfg, db, rdb, nil, logger, nil)
	ctx := context.Background()
	if _, err := svc.CreateList(ctx, model.ListDraft{Name: "Wocheneinkauf"}); err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := filters.Filter(ctx, "#1a9edb"); err != nil {
		t.Fatalf("filter: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"component=shopping", "component=filter_cache", "component=colorfilter"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if n := strings.Count(line, "component="); n != 1 {
			t.Errorf("line has %d component attributes: %s", n, line)
		}
	}
}

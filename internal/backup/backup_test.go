package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dukerupert/shoplisl/internal/database"
	"github.com/dukerupert/shoplisl/internal/docstore"
)

// mockS3Client keeps objects in memory.
type mockS3Client struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMockS3() *mockS3Client {
	return &mockS3Client{objects: make(map[string][]byte)}
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*input.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockS3Client) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *input.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (m *mockS3Client) ListObjectsV2(_ context.Context, input *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if strings.HasPrefix(k, aws.ToString(input.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(k),
			Size: aws.Int64(int64(len(m.objects[k]))),
		})
	}
	return out, nil
}

func setupTestManager(t *testing.T) (*Manager, *mockS3Client) {
	t.Helper()
	client := newMockS3()
	m := newManager(client, "bucket", "family", slog.Default())
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return m, client
}

func TestNewManagerRequiresConfig(t *testing.T) {
	if _, err := NewManager(S3Config{Bucket: "b"}, slog.Default()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if _, err := NewManager(S3Config{Bucket: "b", AccessKey: "k", SecretKey: "s"}, slog.Default()); err != nil {
		t.Errorf("configured manager: %v", err)
	}
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	srcPath := filepath.Join(dir, "source.db")
	src, err := database.Open(srcPath)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	store := docstore.NewSQLStore(src, slog.Default())
	id, err := store.Create(ctx, docstore.Path("family", "articles"), docstore.Document{"name": "Milch"})
	if err != nil {
		t.Fatal(err)
	}

	m, client := setupTestManager(t)
	obj, err := m.Backup(ctx, src, "s3cret")
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasPrefix(obj.Key, "family/shoplisl-") || !strings.HasSuffix(obj.Key, ".db.enc") {
		t.Errorf("key = %q", obj.Key)
	}
	if bytes.Contains(client.objects[obj.Key], []byte("Milch")) {
		t.Error("uploaded object is not encrypted")
	}

	dstPath := filepath.Join(dir, "restored.db")
	if err := m.Restore(ctx, obj.Key, "wrong", dstPath); err == nil {
		t.Fatal("restore with wrong passphrase succeeded")
	}
	if err := m.Restore(ctx, obj.Key, "s3cret", dstPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	restored, err := database.Open(dstPath)
	if err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	doc, err := docstore.NewSQLStore(restored, slog.Default()).Get(ctx, docstore.Path("family", "articles"), id)
	if err != nil {
		t.Fatalf("get restored article: %v", err)
	}
	if docstore.String(doc, "name") != "Milch" {
		t.Errorf("restored doc = %v", doc)
	}
}

func TestBackupRequiresPassphrase(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	m, _ := setupTestManager(t)
	if _, err := m.Backup(context.Background(), db, ""); err == nil {
		t.Error("expected error without passphrase")
	}
}

func TestBackupUploadFailure(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	m, client := setupTestManager(t)
	client.putErr = errors.New("bucket gone")
	if _, err := m.Backup(context.Background(), db, "pass"); err == nil || !strings.Contains(err.Error(), "bucket gone") {
		t.Errorf("err = %v", err)
	}
}

func TestListAndPrune(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	m, client := setupTestManager(t)
	var keys []string
	for i := 0; i < 3; i++ {
		obj, err := m.Backup(ctx, db, "pass")
		if err != nil {
			t.Fatal(err)
		}
		keys = append(keys, obj.Key)
	}
	client.objects["other-tenant/shoplisl-x.db.enc"] = []byte("x")
	client.objects["family/notes.txt"] = []byte("x")

	objects, err := m.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 3 || objects[0].Key != keys[2] {
		t.Fatalf("List = %+v", objects)
	}

	removed, err := m.Prune(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, ok := client.objects[keys[2]]; !ok {
		t.Error("newest backup was pruned")
	}
	if _, ok := client.objects["other-tenant/shoplisl-x.db.enc"]; !ok {
		t.Error("prune touched another prefix")
	}
}

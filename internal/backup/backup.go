// Package backup uploads encrypted snapshots of the shoplisl database to
// S3-compatible storage and restores them.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dukerupert/shoplisl/internal/database"
)

// ErrNotConfigured is returned when bucket or credentials are missing.
var ErrNotConfigured = errors.New("backup not configured: S3 bucket or credentials missing")

// objectStore is the subset of *s3.Client the manager uses.
type objectStore interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config holds S3-compatible storage settings.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Prefix is prepended to every object key, usually the tenant id.
	Prefix string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Object describes one stored snapshot.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Manager struct {
	client objectStore
	bucket string
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

func NewManager(cfg S3Config, logger *slog.Logger) (*Manager, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return newManager(s3.New(opts), cfg.Bucket, cfg.Prefix, logger), nil
}

func newManager(client objectStore, bucket, prefix string, logger *slog.Logger) *Manager {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Manager{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With("component", "backup"),
		now:    time.Now,
	}
}

// Backup snapshots db with VACUUM INTO, encrypts the snapshot with
// passphrase and uploads it. It returns the object key.
func (m *Manager) Backup(ctx context.Context, db *sql.DB, passphrase string) (Object, error) {
	if passphrase == "" {
		return Object{}, errors.New("backup passphrase is required")
	}

	tmpDir, err := os.MkdirTemp("", "shoplisl-backup-")
	if err != nil {
		return Object{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "snapshot.db")
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", snapshot); err != nil {
		return Object{}, fmt.Errorf("snapshot database: %w", err)
	}
	plaintext, err := os.ReadFile(snapshot)
	if err != nil {
		return Object{}, fmt.Errorf("read snapshot: %w", err)
	}

	sealed, err := Seal(plaintext, passphrase)
	if err != nil {
		return Object{}, err
	}

	now := m.now().UTC()
	obj := Object{
		Key:          m.prefix + "shoplisl-" + now.Format("2006-01-02T150405.000Z") + ".db.enc",
		Size:         int64(len(sealed)),
		LastModified: now,
	}
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(sealed),
		ContentLength: aws.Int64(obj.Size),
	})
	if err != nil {
		return Object{}, fmt.Errorf("upload to s3: %w", err)
	}

	m.logger.Info("backup uploaded", "key", obj.Key, "bytes", obj.Size)
	return obj, nil
}

// List returns the stored snapshots, newest first.
func (m *Manager) List(ctx context.Context) ([]Object, error) {
	var (
		objects []Object
		token   *string
	)
	for {
		out, err := m.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(m.bucket),
			Prefix:            aws.String(m.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list s3 objects: %w", err)
		}
		for _, o := range out.Contents {
			key := aws.ToString(o.Key)
			if !strings.HasSuffix(key, ".db.enc") {
				continue
			}
			objects = append(objects, Object{
				Key:          key,
				Size:         aws.ToInt64(o.Size),
				LastModified: aws.ToTime(o.LastModified),
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}

	// Keys embed the timestamp, so key order is age order.
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key > objects[j].Key })
	return objects, nil
}

// Prune deletes all but the newest keep snapshots and returns how many
// were removed. Failed deletes are logged and skipped.
func (m *Manager) Prune(ctx context.Context, keep int) (int, error) {
	objects, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}

	removed := 0
	for _, o := range objects[min(keep, len(objects)):] {
		if _, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(m.bucket),
			Key:    aws.String(o.Key),
		}); err != nil {
			m.logger.Error("failed to delete backup", "key", o.Key, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Restore downloads key, decrypts it, verifies the result opens as a
// shoplisl database and then replaces dbPath with it. The server must not
// be running against dbPath.
func (m *Manager) Restore(ctx context.Context, key, passphrase, dbPath string) error {
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download from s3: %w", err)
	}
	sealed, err := io.ReadAll(out.Body)
	out.Body.Close()
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	plaintext, err := Open(sealed, passphrase)
	if err != nil {
		return err
	}

	// Write next to the target so the final rename stays on one filesystem
	tmp := dbPath + ".restore"
	if err := os.WriteFile(tmp, plaintext, 0o600); err != nil {
		return fmt.Errorf("write restored database: %w", err)
	}
	defer os.Remove(tmp)

	if err := verify(tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, dbPath); err != nil {
		return fmt.Errorf("replace database: %w", err)
	}
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")

	m.logger.Info("backup restored", "key", key, "db", dbPath)
	return nil
}

func verify(path string) error {
	db, err := database.Open(path)
	if err != nil {
		return fmt.Errorf("open restored database: %w", err)
	}
	defer db.Close()

	var integrity string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&integrity); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if integrity != "ok" {
		return fmt.Errorf("integrity check failed: %s", integrity)
	}
	return nil
}

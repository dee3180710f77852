// Package drive lists and reads the day's news summary files from Google
// Drive using a service account.
package drive

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"newspress/internal/core"
)

const folderMimeType = "application/vnd.google-apps.folder"

// ErrNoFolderToday reports that no folder matching today's date exists under
// the summaries folder. A normal, reportable outcome rather than a failure.
var ErrNoFolderToday = errors.New("no folder for today")

// StorageError wraps a Drive access failure.
type StorageError struct {
	Op       string
	NotFound bool
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("drive: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	var apiErr *googleapi.Error
	notFound := errors.As(err, &apiErr) && apiErr.Code == 404
	return &StorageError{Op: op, NotFound: notFound, Err: err}
}

// Client wraps the Drive v3 service with the listing and reading operations
// the pipeline needs.
type Client struct {
	svc *gdrive.Service
}

// Credentials holds service-account material: raw or base64-encoded JSON, or
// a path to a JSON key file.
type Credentials struct {
	JSON string
	File string
}

// NewClient builds a read-only Drive client from the given credentials.
func NewClient(ctx context.Context, creds Credentials) (*Client, error) {
	var opts []option.ClientOption
	switch {
	case creds.JSON != "":
		raw := []byte(creds.JSON)
		if decoded, err := base64.StdEncoding.DecodeString(creds.JSON); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
			raw = decoded
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	case creds.File != "":
		raw, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	default:
		return nil, errors.New("no drive credentials provided")
	}
	opts = append(opts, option.WithScopes(gdrive.DriveReadonlyScope))

	svc, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// TodayFolderNames returns the candidate folder names for the given date in
// every naming convention the summaries folder has used: ISO dashes, compact
// digits, dots, and the two Korean long forms (zero-padded and not).
func TodayFolderNames(t time.Time) []string {
	year, month, day := t.Year(), int(t.Month()), t.Day()
	return []string{
		fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		fmt.Sprintf("%04d%02d%02d", year, month, day),
		fmt.Sprintf("%04d.%02d.%02d", year, month, day),
		fmt.Sprintf("%d년 %d월 %d일", year, month, day),
		fmt.Sprintf("%d년 %02d월 %02d일", year, month, day),
	}
}

// FindTodayFolder resolves the folder id for the given date under parentID.
// Returns ErrNoFolderToday when no candidate name matches.
func (c *Client) FindTodayFolder(ctx context.Context, parentID string, today time.Time) (string, error) {
	candidates := make(map[string]struct{})
	for _, name := range TodayFolderNames(today) {
		candidates[name] = struct{}{}
	}

	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", parentID, folderMimeType)
	list, err := c.svc.Files.List().
		Q(query).
		Fields("files(id,name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapErr("list folders", err)
	}

	for _, f := range list.Files {
		if _, ok := candidates[f.Name]; ok {
			return f.Id, nil
		}
	}
	return "", ErrNoFolderToday
}

// ListCardTexts lists the plain-text news files in folderID ordered by
// modification time, newest first. Card files (the "_card.txt" companions)
// are excluded; only the full summaries come back.
func (c *Client) ListCardTexts(ctx context.Context, folderID string) ([]core.StorageFile, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='text/plain' and trashed=false", folderID)
	list, err := c.svc.Files.List().
		Q(query).
		Fields("files(id,name,modifiedTime)").
		OrderBy("modifiedTime desc").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapErr("list files", err)
	}

	var files []core.StorageFile
	for _, f := range list.Files {
		if !strings.HasSuffix(f.Name, ".txt") || strings.HasSuffix(f.Name, "_card.txt") {
			continue
		}
		modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
		files = append(files, core.StorageFile{
			ID:           f.Id,
			Name:         f.Name,
			ModifiedTime: modified,
		})
	}
	return files, nil
}

// ReadFile downloads the file content as text.
func (c *Client) ReadFile(ctx context.Context, fileID string) (string, error) {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return "", wrapErr("read file", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapErr("read file body", err)
	}
	return string(body), nil
}

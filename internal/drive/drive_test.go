package drive

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func TestTodayFolderNames(t *testing.T) {
	date := time.Date(2025, 9, 5, 10, 0, 0, 0, time.UTC)
	names := TodayFolderNames(date)

	want := []string{
		"2025-09-05",
		"20250905",
		"2025.09.05",
		"2025년 9월 5일",
		"2025년 09월 05일",
	}
	if len(names) != len(want) {
		t.Fatalf("expected %d candidate names, got %d", len(want), len(names))
	}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("candidate %d: expected %q, got %q", i, w, names[i])
		}
	}
}

func TestTodayFolderNamesDoubleDigit(t *testing.T) {
	date := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
	names := TodayFolderNames(date)
	if names[0] != "2025-11-21" {
		t.Errorf("expected 2025-11-21, got %q", names[0])
	}
	// Padded and unpadded Korean forms coincide for double-digit dates.
	if names[3] != "2025년 11월 21일" || names[4] != "2025년 11월 21일" {
		t.Errorf("unexpected Korean forms: %q, %q", names[3], names[4])
	}
}

func TestStorageErrorNotFound(t *testing.T) {
	apiErr := &googleapi.Error{Code: 404, Message: "not found"}
	err := wrapErr("read file", apiErr)

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatal("expected a *StorageError")
	}
	if !storageErr.NotFound {
		t.Error("404 should be flagged NotFound")
	}
	if !errors.Is(err, apiErr) {
		t.Error("wrapped error should unwrap to the API error")
	}

	var forbiddenErr *StorageError
	if !errors.As(wrapErr("list files", &googleapi.Error{Code: 403}), &forbiddenErr) {
		t.Fatal("expected a *StorageError")
	}
	if forbiddenErr.NotFound {
		t.Error("403 should not be flagged NotFound")
	}
}

package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func TestSharePageOnlyForOwner(t *testing.T) {
	h, s := newTestEnv(t)
	aliceCookie, alice := loginAs(t, s, "alice")
	bobCookie, _ := loginAs(t, s, "bob")

	id, err := s.CreateTask(alice, "mine", "", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	path := "/share/" + strconv.FormatInt(id, 10)

	rec := get(h, path, aliceCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner share page: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mine") {
		t.Error("share page does not show the task")
	}

	rec = get(h, path, bobCookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("non-owner share page: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestShareFlow(t *testing.T) {
	h, s := newTestEnv(t)
	aliceCookie, alice := loginAs(t, s, "alice")
	loginAs(t, s, "bob")

	id, err := s.CreateTask(alice, "mine", "", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	path := "/share/" + strconv.FormatInt(id, 10)

	rec := postForm(h, path, url.Values{"username": {"bob"}}, aliceCookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("share: status %d", rec.Code)
	}
	n, _ := s.ShareCountForTask(id)
	if n != 1 {
		t.Fatalf("grant rows = %d, want 1", n)
	}

	// Repeating and sharing with a stranger both leave the table alone.
	postForm(h, path, url.Values{"username": {"bob"}}, aliceCookie)
	postForm(h, path, url.Values{"username": {"nobody"}}, aliceCookie)
	n, _ = s.ShareCountForTask(id)
	if n != 1 {
		t.Errorf("grant rows = %d after no-op shares, want 1", n)
	}
}

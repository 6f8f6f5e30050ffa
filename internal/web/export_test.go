package web

import (
	"net/http"
	"testing"
)

func TestExportCSV(t *testing.T) {
	h, s := newTestEnv(t)
	cookie, alice := loginAs(t, s, "alice")

	if _, err := s.CreateTask(alice, "Buy milk", "High", "Personal", ""); err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec := get(h, "/export", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=tasks.csv" {
		t.Errorf("content disposition %q", cd)
	}

	want := "ID,Task,Done,Priority,Due Date,Category\n" +
		"1,Buy milk,False,High,,Personal\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("csv body:\n%q\nwant:\n%q", got, want)
	}
}

func TestExportOnlyOwnTasks(t *testing.T) {
	h, s := newTestEnv(t)
	aliceCookie, _ := loginAs(t, s, "alice")
	_, bob := loginAs(t, s, "bob")

	taskID, err := s.CreateTask(bob, "bob's row", "", "", "")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	// Shared visibility does not extend to the export, it covers owned
	// tasks only.
	if err := s.ShareTask(taskID, bob, "alice"); err != nil {
		t.Fatalf("share: %v", err)
	}

	rec := get(h, "/export", aliceCookie)
	want := "ID,Task,Done,Priority,Due Date,Category\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("csv body:\n%q\nwant header only:\n%q", got, want)
	}
}

package storage

import (
	"testing"

	"llmchat/chat"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKV failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKVPutGetDelete(t *testing.T) {
	kv := openTestKV(t)

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Put("k", "v1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if v, ok, _ := kv.Get("k"); !ok || v != "v1" {
		t.Errorf("Get(k) = %q ok=%v, want v1", v, ok)
	}

	// Overwrite, last write wins
	if err := kv.Put("k", "v2"); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}
	if v, _, _ := kv.Get("k"); v != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want v2", v)
	}

	if err := kv.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := kv.Get("k"); ok {
		t.Error("key still present after Delete")
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(openTestKV(t))

	session := &chat.Session{
		Messages: []chat.Message{
			{Role: "system", Content: "prompt"},
			{Role: "user", Content: "question"},
			{Role: "assistant", Content: "answer"},
		},
		Input:             "draft text",
		Model:             "llama3.2:latest",
		SystemPrompt:      "prompt",
		Temperature:       0.7,
		MaxTokens:         1000,
		TopP:              1,
		StopSequences:     []string{"STOP"},
		Seed:              42,
		EnableTools:       true,
		SelectedCharacter: "Wise Mentor",
	}

	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for a saved session")
	}

	if len(loaded.Messages) != 3 {
		t.Errorf("got %d messages, want 3", len(loaded.Messages))
	}
	if loaded.Input != session.Input {
		t.Errorf("Input = %q, want %q", loaded.Input, session.Input)
	}
	if loaded.Model != session.Model {
		t.Errorf("Model = %q, want %q", loaded.Model, session.Model)
	}
	if loaded.SelectedCharacter != session.SelectedCharacter {
		t.Errorf("SelectedCharacter = %q, want %q", loaded.SelectedCharacter, session.SelectedCharacter)
	}
	if len(loaded.StopSequences) != 1 || loaded.StopSequences[0] != "STOP" {
		t.Errorf("StopSequences = %v, want [STOP]", loaded.StopSequences)
	}
	if !loaded.EnableTools {
		t.Error("EnableTools lost in round trip")
	}
}

func TestSessionStoreLoadAbsent(t *testing.T) {
	store := NewSessionStore(openTestKV(t))

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Load = %+v, want nil for empty store", loaded)
	}
}

func TestSessionStoreOverwrite(t *testing.T) {
	store := NewSessionStore(openTestKV(t))

	if err := store.Save(&chat.Session{Model: "first"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(&chat.Session{Model: "second"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Model != "second" {
		t.Errorf("Model = %q, want second (last write wins)", loaded.Model)
	}
}

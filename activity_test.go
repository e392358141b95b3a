package discordipc

import "testing"

func TestClient_SetActivity(t *testing.T) {
	c := NewClient("test-app-id")
	server, _ := wiredSession(t, c)

	activity := &Activity{
		Details: "Testing",
		State:   "Running tests",
		Timestamps: &Timestamps{
			Start: 1000000,
		},
		Assets: &Assets{
			LargeImage: "large-img",
			LargeText:  "Large Text",
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.SetActivity(activity)
		done <- err
	}()

	opcode, m := readFrame(t, server)
	if opcode != OpFrame {
		t.Fatalf("expected OpFrame, got %d", opcode)
	}
	if m["cmd"] != "SET_ACTIVITY" {
		t.Fatalf("expected cmd=SET_ACTIVITY, got %v", m["cmd"])
	}

	args, ok := m["args"].(map[string]any)
	if !ok {
		t.Fatalf("expected args to be a map, got %T", m["args"])
	}
	pid, ok := args["pid"].(float64)
	if !ok || int(pid) != c.pid {
		t.Fatalf("expected pid=%d, got %v", c.pid, args["pid"])
	}
	act, ok := args["activity"].(map[string]any)
	if !ok {
		t.Fatalf("expected activity to be a map, got %T", args["activity"])
	}
	if act["details"] != "Testing" || act["state"] != "Running tests" {
		t.Fatalf("activity fields mismatch: %v", act)
	}

	nonce := m["nonce"].(string)
	writeJSONFrame(t, server, OpFrame, map[string]any{
		"cmd": "SET_ACTIVITY", "nonce": nonce, "data": map[string]any{"details": "Testing"},
	})

	if err := <-done; err != nil {
		t.Fatalf("SetActivity returned error: %v", err)
	}
}

func TestClient_ClearActivity(t *testing.T) {
	c := NewClient("test-app-id")
	server, _ := wiredSession(t, c)

	done := make(chan error, 1)
	go func() { done <- c.ClearActivity() }()

	_, m := readFrame(t, server)
	args := m["args"].(map[string]any)
	if args["activity"] != nil {
		t.Fatalf("expected null activity, got %v", args["activity"])
	}

	nonce := m["nonce"].(string)
	writeJSONFrame(t, server, OpFrame, map[string]any{
		"cmd": "SET_ACTIVITY", "nonce": nonce, "data": map[string]any{},
	})

	if err := <-done; err != nil {
		t.Fatalf("ClearActivity returned error: %v", err)
	}
}

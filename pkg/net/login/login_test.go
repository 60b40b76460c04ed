package login

import "testing"

func TestReadCString(t *testing.T) {
	data := []byte("zone1\x00extra")
	s, pos, err := readCString(data, 0)
	if err != nil {
		t.Fatalf("readCString failed: %v", err)
	}
	if s != "zone1" {
		t.Errorf("s = %q, want zone1", s)
	}
	if pos != 6 {
		t.Errorf("pos = %d, want 6", pos)
	}
}

func TestReadCStringUnterminated(t *testing.T) {
	if _, _, err := readCString([]byte("noterm"), 0); err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestReadUint32(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00}
	v, pos, err := readUint32(data, 0)
	if err != nil {
		t.Fatalf("readUint32 failed: %v", err)
	}
	if v != 1 {
		t.Errorf("v = %d, want 1", v)
	}
	if pos != 4 {
		t.Errorf("pos = %d, want 4", pos)
	}
}

func TestReadUint32Truncated(t *testing.T) {
	if _, _, err := readUint32([]byte{0x01, 0x02}, 0); err == nil {
		t.Fatal("expected an error for a truncated record")
	}
}

func TestTrimNul(t *testing.T) {
	if got := string(trimNul([]byte("abc\x00def"))); got != "abc" {
		t.Errorf("trimNul = %q, want abc", got)
	}
	if got := string(trimNul([]byte("noterm"))); got != "noterm" {
		t.Errorf("trimNul with no NUL = %q, want noterm", got)
	}
}

// TestServerListRecordStream pins the server-list record layout that
// EndListServers walks: host, type, runtime ID, name, two locale
// strings, status, and player count, back to back with no padding.
func TestServerListRecordStream(t *testing.T) {
	var body []byte
	appendCString := func(s string) {
		body = append(body, []byte(s)...)
		body = append(body, 0)
	}
	appendUint32 := func(v uint32) {
		body = append(body, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}

	appendCString("host1.example.com")
	appendUint32(1)
	appendUint32(100)
	appendCString("Blackburrow")
	appendCString("en")
	appendCString("")
	appendUint32(0)
	appendUint32(42)

	var servers []ServerInfo
	pos := 0
	for pos < len(body) {
		var s ServerInfo
		var err error
		if s.Host, pos, err = readCString(body, pos); err != nil {
			t.Fatalf("Host: %v", err)
		}
		if s.Type, pos, err = readUint32(body, pos); err != nil {
			t.Fatalf("Type: %v", err)
		}
		if s.RuntimeID, pos, err = readUint32(body, pos); err != nil {
			t.Fatalf("RuntimeID: %v", err)
		}
		if s.Name, pos, err = readCString(body, pos); err != nil {
			t.Fatalf("Name: %v", err)
		}
		if s.Locale1, pos, err = readCString(body, pos); err != nil {
			t.Fatalf("Locale1: %v", err)
		}
		if s.Locale2, pos, err = readCString(body, pos); err != nil {
			t.Fatalf("Locale2: %v", err)
		}
		if s.Status, pos, err = readUint32(body, pos); err != nil {
			t.Fatalf("Status: %v", err)
		}
		if s.Players, pos, err = readUint32(body, pos); err != nil {
			t.Fatalf("Players: %v", err)
		}
		servers = append(servers, s)
	}

	if len(servers) != 1 {
		t.Fatalf("expected 1 server, got %d", len(servers))
	}
	got := servers[0]
	if got.Host != "host1.example.com" || got.Name != "Blackburrow" || got.Locale1 != "en" || got.Locale2 != "" {
		t.Errorf("unexpected server record: %+v", got)
	}
	if got.Type != 1 || got.RuntimeID != 100 || got.Status != 0 || got.Players != 42 {
		t.Errorf("unexpected server record fields: %+v", got)
	}
}

// TestLoginRequestPadding checks BeginLogin's padding arithmetic:
// password + username + 14 bytes of fixed overhead is rounded up to an
// allowance of 20+8k bytes, which leaves at least one trailing NUL and
// makes the body (password + NUL + username + padding) a multiple of 8
// bytes.
func TestLoginRequestPadding(t *testing.T) {
	cases := []struct {
		username, password string
	}{
		{"a", "b"},
		{"testuser", "testpassword"},
		{"", ""},
		{"verylongusername1234567890", "verylongpassword1234567890"},
	}

	for _, tc := range cases {
		packetSize := len(tc.password) + len(tc.username) + 14
		allowedSize := 20
		for allowedSize < packetSize {
			allowedSize += 8
		}
		padding := allowedSize - packetSize + 1

		if padding < 1 {
			t.Errorf("username=%q password=%q: padding = %d, want >= 1", tc.username, tc.password, padding)
		}
		total := len(tc.password) + 1 + len(tc.username) + padding
		if total%8 != 0 {
			t.Errorf("username=%q password=%q: body length %d is not a multiple of 8", tc.username, tc.password, total)
		}
	}
}

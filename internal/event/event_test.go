package event

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnviron(t *testing.T) {
	c := FromEnviron([]string{
		"NZBPO_USERKEY=abc",
		"NZBPO_PRIVATEKEY=a=b=c",
		"EMPTY=",
		"garbage",
		"=novalue",
	})

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"NZBPO_USERKEY", "abc", true},
		{"NZBPO_PRIVATEKEY", "a=b=c", true},
		{"EMPTY", "", true},
		{"garbage", "", false},
		{"MISSING", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := c.Lookup(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	vars := map[string]string{"A": "1"}
	c := New(vars)
	vars["A"] = "2"
	if got := c.Get("A"); got != "1" {
		t.Errorf("Get(A) = %q, want 1 (context must not alias caller map)", got)
	}
}

func TestRequire(t *testing.T) {
	c := New(map[string]string{"SET": "", "FULL": "x"})

	if v, err := c.Require("FULL"); err != nil || v != "x" {
		t.Errorf("Require(FULL) = (%q, %v)", v, err)
	}
	if _, err := c.Require("SET"); err != nil {
		t.Errorf("Require(SET) should accept an empty value, got %v", err)
	}

	_, err := c.Require("NZBPP_NZBNAME")
	var missing *MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("Require(missing) error = %v, want *MissingKeyError", err)
	}
	if missing.Key != "NZBPP_NZBNAME" {
		t.Errorf("Key = %q, want NZBPP_NZBNAME", missing.Key)
	}
}

func TestWithDefaults(t *testing.T) {
	c := New(map[string]string{"NZBPO_USERKEY": "from-env"})
	merged := c.WithDefaults(map[string]string{
		"NZBPO_USERKEY":  "from-file",
		"NZBPO_APPTOKEN": "token",
	})

	if got := merged.Get("NZBPO_USERKEY"); got != "from-env" {
		t.Errorf("USERKEY = %q, environment must win", got)
	}
	if got := merged.Get("NZBPO_APPTOKEN"); got != "token" {
		t.Errorf("APPTOKEN = %q, want default filled in", got)
	}
	if c.Has("NZBPO_APPTOKEN") {
		t.Error("WithDefaults must not mutate the receiver")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "NZBPO_USERKEY=user\n# comment\nNZBPO_APPTOKEN=\"quoted token\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	vars, err := LoadEnvFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if vars["NZBPO_USERKEY"] != "user" {
		t.Errorf("USERKEY = %q", vars["NZBPO_USERKEY"])
	}
	if vars["NZBPO_APPTOKEN"] != "quoted token" {
		t.Errorf("APPTOKEN = %q", vars["NZBPO_APPTOKEN"])
	}

	if _, err := LoadEnvFile(filepath.Join(dir, "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestCorrelationID(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"none", nil, ""},
		{"queue id", map[string]string{KeyQueueNZBID: "12"}, "12"},
		{"post id", map[string]string{KeyPostNZBID: "34"}, "34"},
		{"queue wins", map[string]string{KeyQueueNZBID: "12", KeyPostNZBID: "34"}, "12"},
		{"empty queue id falls through", map[string]string{KeyQueueNZBID: "", KeyPostNZBID: "34"}, "34"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.vars).CorrelationID(); got != tt.want {
				t.Errorf("CorrelationID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want Flow
	}{
		{"added", map[string]string{KeyQueueEvent: "NZB_ADDED"}, FlowQueue},
		{"downloaded", map[string]string{KeyQueueEvent: "NZB_DOWNLOADED"}, FlowQueue},
		{"deleted", map[string]string{KeyQueueEvent: "NZB_DELETED"}, FlowQueue},
		{"unknown queue event", map[string]string{KeyQueueEvent: "FILE_DOWNLOADED"}, FlowNone},
		{"queue event beats total status", map[string]string{KeyQueueEvent: "URL_COMPLETED", KeyPostTotalStatus: "SUCCESS"}, FlowNone},
		{"post-process", map[string]string{KeyPostTotalStatus: "SUCCESS"}, FlowPostProcess},
		{"post-process beats command", map[string]string{KeyPostTotalStatus: "FAILURE", KeyCommand: "Test"}, FlowPostProcess},
		{"test command", map[string]string{KeyCommand: "Test"}, FlowTest},
		{"legacy test command", map[string]string{KeyCommand: "TestSettings"}, FlowTest},
		{"other command", map[string]string{KeyCommand: "Other"}, FlowNone},
		{"nothing", map[string]string{KeyScriptDir: "/scripts"}, FlowNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(New(tt.vars)); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractQueue(t *testing.T) {
	t.Run("added", func(t *testing.T) {
		q, err := ExtractQueue(New(map[string]string{
			KeyQueueEvent:   "NZB_ADDED",
			KeyQueueNZBName: "Some.Show.S01E01",
			KeyQueueNZBID:   "7",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if q.Event != QueueAdded || q.NZBName != "Some.Show.S01E01" || q.NZBID != "7" {
			t.Errorf("got %+v", q)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ExtractQueue(New(map[string]string{KeyQueueEvent: "NZB_ADDED"}))
		var missing *MissingKeyError
		if !errors.As(err, &missing) || missing.Key != KeyQueueNZBName {
			t.Errorf("err = %v, want missing %s", err, KeyQueueNZBName)
		}
	})

	t.Run("deleted requires delete status", func(t *testing.T) {
		_, err := ExtractQueue(New(map[string]string{
			KeyQueueEvent:   "NZB_DELETED",
			KeyQueueNZBName: "x",
		}))
		var missing *MissingKeyError
		if !errors.As(err, &missing) || missing.Key != KeyQueueDeleteStatus {
			t.Errorf("err = %v, want missing %s", err, KeyQueueDeleteStatus)
		}
	})
}

func TestExtractPostProcess(t *testing.T) {
	pp, err := ExtractPostProcess(New(map[string]string{
		KeyPostTotalStatus:  "SUCCESS",
		KeyPostStatus:       "SUCCESS/ALL",
		KeyPostNZBName:      "Foo",
		KeyPostParStatus:    "2",
		KeyPostUnpackStatus: "",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if pp.TotalStatus != "SUCCESS" || pp.Status != "SUCCESS/ALL" || pp.NZBName != "Foo" {
		t.Errorf("got %+v", pp)
	}
	if !pp.HasParStatus || pp.ParStatus != "2" {
		t.Errorf("ParStatus = %q (%v)", pp.ParStatus, pp.HasParStatus)
	}
	if !pp.HasUnpackStatus {
		t.Error("empty UnpackStatus should still be present")
	}
	if pp.HasDirectory {
		t.Error("Directory should be absent")
	}

	_, err = ExtractPostProcess(New(map[string]string{KeyPostTotalStatus: "SUCCESS", KeyPostNZBName: "Foo"}))
	var missing *MissingKeyError
	if !errors.As(err, &missing) || missing.Key != KeyPostStatus {
		t.Errorf("err = %v, want missing %s", err, KeyPostStatus)
	}
}

package issue

import (
	"encoding/json"
	"testing"
)

func TestParsePriorityAliases(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
	}{
		{"trivial", PriorityTrivial},
		{"t", PriorityTrivial},
		{"typo", PriorityTrivial},
		{"Low", PriorityLow},
		{"l", PriorityLow},
		{"MEDIUM", PriorityMedium},
		{"m", PriorityMedium},
		{"high", PriorityHigh},
		{"h", PriorityHigh},
		{"critical", PriorityCritical},
		{"c", PriorityCritical},
		{"Blocker", PriorityBlocker},
		{"b", PriorityBlocker},
		{" medium ", PriorityMedium},
	}
	for _, c := range cases {
		got, err := ParsePriority(c.in)
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority(\"urgent\") should fail")
	}
}

func TestPriorityOrdering(t *testing.T) {
	if !(PriorityTrivial < PriorityLow && PriorityLow < PriorityMedium &&
		PriorityMedium < PriorityHigh && PriorityHigh < PriorityCritical &&
		PriorityCritical < PriorityBlocker) {
		t.Error("priority constants are not strictly ordered")
	}
}

func TestPriorityRaiseLowerSaturate(t *testing.T) {
	if got := PriorityBlocker.Raise(); got != PriorityBlocker {
		t.Errorf("Blocker.Raise() = %v, want Blocker", got)
	}
	if got := PriorityTrivial.Lower(); got != PriorityTrivial {
		t.Errorf("Trivial.Lower() = %v, want Trivial", got)
	}
	if got := PriorityLow.Raise(); got != PriorityMedium {
		t.Errorf("Low.Raise() = %v, want Medium", got)
	}
	if got := PriorityHigh.Lower(); got != PriorityMedium {
		t.Errorf("High.Lower() = %v, want Medium", got)
	}
}

func TestParseStatusAliases(t *testing.T) {
	open := []string{"open", "Active", "PENDING"}
	for _, s := range open {
		got, err := ParseStatus(s)
		if err != nil || got != StatusOpen {
			t.Errorf("ParseStatus(%q) = %v, %v; want Open", s, got, err)
		}
	}
	closed := []string{"closed", "Done", "finished"}
	for _, s := range closed {
		got, err := ParseStatus(s)
		if err != nil || got != StatusClosed {
			t.Errorf("ParseStatus(%q) = %v, %v; want Closed", s, got, err)
		}
	}
	if _, err := ParseStatus("wontfix"); err == nil {
		t.Error("ParseStatus(\"wontfix\") should fail")
	}
}

func TestStatusToggle(t *testing.T) {
	if StatusOpen.Toggle() != StatusClosed || StatusClosed.Toggle() != StatusOpen {
		t.Error("Toggle must flip between Open and Closed")
	}
}

func TestStatusPriorityJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(PriorityCritical)
	if err != nil {
		t.Fatalf("marshal priority: %v", err)
	}
	if string(b) != `"Critical"` {
		t.Errorf("priority wire form = %s, want \"Critical\"", b)
	}

	var p Priority
	if err := json.Unmarshal([]byte(`"h"`), &p); err != nil {
		t.Fatalf("unmarshal priority alias: %v", err)
	}
	if p != PriorityHigh {
		t.Errorf("unmarshal \"h\" = %v, want High", p)
	}

	var s Status
	if err := json.Unmarshal([]byte(`"done"`), &s); err != nil {
		t.Fatalf("unmarshal status alias: %v", err)
	}
	if s != StatusClosed {
		t.Errorf("unmarshal \"done\" = %v, want Closed", s)
	}
}

func TestParseTemplate(t *testing.T) {
	tmpl, comment, err := ParseTemplate("---\ntitle: Fix bug\npriority: high\ncreated_by: dev@example.com\n---\nThis is the comment.")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if tmpl.Title != "Fix bug" {
		t.Errorf("title = %q, want \"Fix bug\"", tmpl.Title)
	}
	if tmpl.Priority != PriorityHigh {
		t.Errorf("priority = %v, want High", tmpl.Priority)
	}
	if tmpl.CreatedBy != "dev@example.com" {
		t.Errorf("created_by = %q", tmpl.CreatedBy)
	}
	if comment != "This is the comment." {
		t.Errorf("comment = %q", comment)
	}
}

func TestParseTemplateMultilineComment(t *testing.T) {
	_, comment, err := ParseTemplate("---\ntitle: T\n---\nLine 1.\nLine 2.")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if comment != "Line 1.\nLine 2." {
		t.Errorf("comment = %q", comment)
	}
}

func TestParseTemplateCommentOnFenceLine(t *testing.T) {
	tmpl, comment, err := ParseTemplate("---\ntitle: T\n---comment")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if comment != "comment" {
		t.Errorf("comment = %q, want \"comment\"", comment)
	}
	if tmpl.Title != "T" {
		t.Errorf("title = %q", tmpl.Title)
	}
}

func TestParseTemplateInvalid(t *testing.T) {
	bad := []string{
		"",
		"no fences at all",
		"---\ntitle: T", // missing closing fence
	}
	for _, in := range bad {
		if _, _, err := ParseTemplate(in); err == nil {
			t.Errorf("ParseTemplate(%q) should fail", in)
		}
	}
}

func TestParseTemplateDefaultSeed(t *testing.T) {
	tmpl, comment, err := ParseTemplate(NewTemplate)
	if err != nil {
		t.Fatalf("the shipped template must parse: %v", err)
	}
	if tmpl.Title == "" {
		t.Error("shipped template has no title")
	}
	if tmpl.Priority != PriorityLow {
		t.Errorf("shipped template priority = %v, want Low", tmpl.Priority)
	}
	if comment != "<no comment provided>" {
		t.Errorf("shipped template comment = %q", comment)
	}
}

func TestParseTemplateMissingTitle(t *testing.T) {
	if _, _, err := ParseTemplate("---\npriority: low\n---\nc"); err == nil {
		t.Error("template without title should fail")
	}
}

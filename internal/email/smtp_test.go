package email

import (
	"mime"
	"strings"
	"testing"

	"leadscout_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

func TestRenderFollowUpTemplate(t *testing.T) {
	content, err := renderEmailTemplate("follow_up.html", followUpEmailData{
		baseEmailData: baseEmailData{Title: "Uppföljning", Heading: "Uppföljning", Sender: "Lystr"},
		ContactName:   "Anna",
		Paragraphs:    []string{"Tack för samtalet.", "Vi återkommer <snart>."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"Hej Anna,", "Tack för samtalet.", "Vi återkommer &lt;snart&gt;.", "Lystr"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected rendered email to contain %q", want)
		}
	}
}

func TestParagraphs(t *testing.T) {
	got := paragraphs("Hej!\r\n\r\nFörsta raden\nfortsätter här.\n\n\n  ")
	if len(got) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %q", len(got), got)
	}
	if got[1] != "Första raden fortsätter här." {
		t.Fatalf("unexpected paragraph %q", got[1])
	}
}

func TestBuildFollowUp(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "salj@lystr.se", "Lystr")

	msg, err := s.buildFollowUp("anna@example.se", "Anna Svensson", "Uppföljning av vårt samtal om solceller", "Tack för samtalet.")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rcpts, err := msg.GetRecipients()
	if err != nil {
		t.Fatalf("recipients: %v", err)
	}
	if len(rcpts) != 1 || !strings.Contains(rcpts[0], "anna@example.se") {
		t.Fatalf("unexpected recipients %v", rcpts)
	}
	subject := msg.GetGenHeader(gomail.HeaderSubject)
	if len(subject) != 1 {
		t.Fatalf("unexpected subject %v", subject)
	}
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	if err != nil {
		t.Fatalf("decode subject: %v", err)
	}
	if decoded != "Uppföljning av vårt samtal om solceller" {
		t.Fatalf("unexpected subject %q", decoded)
	}
}

func TestBuildFollowUpRejectsBadAddress(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "salj@lystr.se", "Lystr")
	if _, err := s.buildFollowUp("not-an-address", "Anna", "Hej", "Tack"); err == nil {
		t.Fatal("expected error for invalid recipient")
	}
}

func TestNewSenderDisabled(t *testing.T) {
	if s := NewSender(&config.Config{}); s != nil {
		t.Fatal("expected nil sender when smtp is not configured")
	}
	s := NewSender(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPFromAddress: "salj@lystr.se"})
	if s == nil || s.host != "smtp.example.com" || s.port != 587 {
		t.Fatalf("unexpected sender %+v", s)
	}
}

func TestFirstName(t *testing.T) {
	if got := firstName("  Anna Svensson "); got != "Anna" {
		t.Fatalf("expected Anna, got %q", got)
	}
	if got := firstName(""); got != "där" {
		t.Fatalf("expected fallback greeting, got %q", got)
	}
}

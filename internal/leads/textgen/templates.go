// Package textgen drafts interaction summaries and follow-up messages from
// sales notes. Templates are always available; external language model
// providers can be plugged in and fall back to the templates on any failure.
package textgen

import (
	"fmt"
	"strings"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/objections"
)

const (
	summaryPrefix       = "Kontakt med kund."
	summaryFallbackLen  = 100
	fallbackContactName = "där"
)

// Follow-up templates. %s is the contact name.
const (
	FollowUpPrice      = "Hej %s! Tack för vårt samtal. Jag förstår att investeringen känns stor. Med vår EaaS-lösning behöver du inte lägga ut något kapital - du börjar spara direkt med en fast månadsavgift. Kan jag skicka en konkret kalkyl för just ditt hus? Vänliga hälsningar, Lystr"
	FollowUpTiming     = "Hej %s! Tack för att du tog dig tid att prata med mig. Jag förstår att timingen inte är perfekt just nu. Låt mig höra av mig om några månader när det passar bättre. I mellantiden, här är en kalkyl om du vill titta på siffrorna. Ha en bra dag! / Lystr"
	FollowUpROI        = "Hej %s! Tack för samtalet. Jag har sammanställt en ROI-kalkyl baserad på din faktiska elförbrukning. Med dina siffror blir återbetalningstiden ca 7 år, och du sparar uppåt 40%% på elräkningen. Vill du att jag går igenom den över telefon eller mail? Mvh, Lystr"
	FollowUpComplexity = "Hej %s! Vi förenklar hela processen - du behöver inte tänka på tillstånd, installation eller underhåll. Vi ordnar allt från A till Ö, och du får en fast kontaktperson genom hela resan. Vill du boka in ett kort möte där jag visar exakt hur det går till? / Lystr"
	FollowUpGeneric    = "Hej %s! Tack för vårt samtal idag. Jag har sammanställt informationen vi pratade om. Hör gärna av dig om du har några frågor! Vänliga hälsningar, Lystr"
)

// followUpOrder decides which single template answers a multi-objection note.
var followUpOrder = []struct {
	category domain.Objection
	template string
}{
	{domain.ObjectionPrice, FollowUpPrice},
	{domain.ObjectionTiming, FollowUpTiming},
	{domain.ObjectionROISkepticism, FollowUpROI},
	{domain.ObjectionComplexity, FollowUpComplexity},
}

// Summarize condenses notes to their first sentence behind a fixed prefix and
// lists detected objections unless the set is {none}.
func Summarize(notes string, found objections.Set) string {
	first := firstSentence(notes)
	if found.IsNone() {
		return summaryPrefix + " " + first + "."
	}
	return summaryPrefix + " Invändningar identifierade: " + strings.Join(found.Strings(), ", ") + ". " + first + "."
}

// firstSentence returns the first non-blank "."-separated segment, or the
// first 100 characters when the notes have no such segment.
func firstSentence(notes string) string {
	if strings.Contains(notes, ".") {
		for _, segment := range strings.Split(notes, ".") {
			if s := strings.TrimSpace(segment); s != "" {
				return s
			}
		}
	}
	runes := []rune(notes)
	if len(runes) > summaryFallbackLen {
		runes = runes[:summaryFallbackLen]
	}
	return strings.TrimSpace(string(runes))
}

// FollowUp picks exactly one message template. Price beats timing, timing
// beats ROI doubt and ROI doubt beats complexity. Other objections get the
// generic message. The notes themselves do not influence the template.
func FollowUp(_ string, found objections.Set, contactName string) string {
	name := strings.TrimSpace(contactName)
	if name == "" {
		name = fallbackContactName
	}
	for _, candidate := range followUpOrder {
		if found.Has(candidate.category) {
			return fmt.Sprintf(candidate.template, name)
		}
	}
	return fmt.Sprintf(FollowUpGeneric, name)
}

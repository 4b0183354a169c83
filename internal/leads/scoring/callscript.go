package scoring

import (
	"fmt"
	"math"

	"leadscout_backend/internal/leads/domain"
)

// CallScript is a phone script filled in with the lead's numbers.
type CallScript struct {
	Opening           string   `json:"opening"`
	KeyPoints         []string `json:"keyPoints"`
	ObjectionHandling []string `json:"objectionHandling"`
	Closing           string   `json:"closing"`
}

const (
	savingsShare = 0.4
	m2PerKw      = 6

	fallbackContactName = "där"

	evKeyPoint      = "Eftersom du har elbil så blir ROI:n ännu bättre - du kan ladda direkt från ditt eget tak."
	batteryKeyPoint = "Med vårt batteri kan du lagra solel och använda den när elpriset är som högst."
	closingLine     = "Vad säger du om att vi bokar in en kostnadsfri platsbesiktning? Då kan vi göra en exakt kalkyl för just ditt hus och du får se konkret vad du kan spara. Passar [förslag på datum]?"
)

// objectionRebuttals do not depend on the lead.
var objectionRebuttals = []string{
	`Pris: "Jag förstår. Det smarta med EaaS är att du inte behöver ligga ute med 150-200 tkr. Du börjar spara från dag 1 utan uppoffring."`,
	`ROI-tvivel: "Jag kan göra en konkret kalkyl åt dig. Med din förbrukning och takyta så brukar payback vara 6-8 år, men med EaaS så ser du besparingen direkt."`,
	`Timing: "Perfekt timing faktiskt! Elpriser förväntas stiga, och ROT-avdraget är aktivt nu. Dessutom har vi lediga installationstider i [månad]."`,
	`Komplexitet: "Det är därför vi har EaaS - vi sköter allt från A till Ö. Du behöver bara säga ja, sen fixar vi resten."`,
}

// EstimatedSavings is the expected monthly saving in SEK.
func EstimatedSavings(monthlyBillSek int) int {
	return int(math.Floor(float64(monthlyBillSek) * savingsShare))
}

// EstimatedSystemKw is the solar system size the roof fits.
func EstimatedSystemKw(roofAreaM2 int) int {
	return int(math.Floor(float64(roofAreaM2) / m2PerKw))
}

// GenerateCallScript fills the sales script template for lead.
func GenerateCallScript(lead domain.Lead) CallScript {
	name := lead.ContactName
	if name == "" {
		name = fallbackContactName
	}

	evPoint := batteryKeyPoint
	if lead.HasEV {
		evPoint = evKeyPoint
	}

	rebuttals := make([]string, len(objectionRebuttals))
	copy(rebuttals, objectionRebuttals)

	return CallScript{
		Opening: fmt.Sprintf("Hej %s! Jag heter [ditt namn] och ringer från Lystr. Vi såg att du varit inne och tittat på våra energilösningar. Passar det att prata i några minuter?", name),
		KeyPoints: []string{
			fmt.Sprintf("Du har idag en elräkning på ca %d kr/månad. Med vår EaaS-lösning kan du spara uppåt %d kr/månad.", lead.MonthlyBillSek, EstimatedSavings(lead.MonthlyBillSek)),
			fmt.Sprintf("Din takyta på %d m² är perfekt för en solcellsanläggning på ca %d kW.", lead.RoofAreaM2, EstimatedSystemKw(lead.RoofAreaM2)),
			evPoint,
			"Det bästa är att du slipper investering - vi står för installation och underhåll, du betalar bara en fast månadsavgift.",
			"Grönt ROT-avdrag på 20% gör att lösningen blir ännu mer lönsam.",
		},
		ObjectionHandling: rebuttals,
		Closing:           closingLine,
	}
}

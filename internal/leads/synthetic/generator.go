// Package synthetic generates a demo dataset of Swedish solar leads. All
// names, numbers and addresses are made up.
package synthetic

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/scoring"
	"leadscout_backend/platform/phone"
)

const day = 24 * time.Hour

var (
	kommuner = []string{
		"Solna", "Danderyd", "Täby", "Nacka", "Lidingö", "Värmdö", "Huddinge", "Sollentuna",
		"Upplands Väsby", "Järfälla", "Sundbyberg", "Ekerö", "Vaxholm", "Norrtälje", "Sigtuna",
		"Uppsala", "Enköping", "Håbo", "Västerås", "Eskilstuna", "Linköping", "Norrköping",
		"Malmö", "Lund", "Helsingborg", "Göteborg", "Mölndal", "Partille",
	}
	omraden = []string{
		"Centrum", "Villaområdet", "Norra Delen", "Södra Delen",
		"Östra Kvarteret", "Västra Sidan", "Industriområdet", "Strandvägen",
	}
	firstNames = []string{
		"Erik", "Anna", "Lars", "Maria", "Johan", "Emma", "Anders", "Sofia", "Peter", "Karin",
		"Mikael", "Linda", "Karl", "Sara", "Magnus", "Eva", "Gustav", "Helena", "Oskar", "Ingrid",
	}
	lastNames = []string{
		"Andersson", "Johansson", "Karlsson", "Nilsson", "Eriksson", "Larsson", "Olsson", "Persson",
		"Svensson", "Gustafsson", "Pettersson", "Jonsson", "Jansson", "Hansson", "Bengtsson",
	}
	emailDomains = []string{"example.se", "test.se", "demo.se", "synthetic.se"}

	// Weighted pools: repeated entries are more likely.
	channelPool = []domain.Channel{
		domain.ChannelHemsol, domain.ChannelHemsol, domain.ChannelHemsol,
		domain.ChannelOrganic, domain.ChannelOrganic,
		domain.ChannelGoogleAds, domain.ChannelKilowattbutiken, domain.ChannelReferral, domain.ChannelPartner,
	}
	segmentPool = []domain.Segment{
		domain.SegmentVilla, domain.SegmentVilla, domain.SegmentVilla, domain.SegmentVilla,
		domain.SegmentSME, domain.SegmentBRF,
	}
	heatingPool = []domain.HeatingType{
		domain.HeatingHeatPump, domain.HeatingHeatPump,
		domain.HeatingDirectElectric, domain.HeatingDistrict, domain.HeatingOil, domain.HeatingPellets,
	}
	objectionPool = []domain.Objection{
		domain.ObjectionPrice, domain.ObjectionTrust, domain.ObjectionROISkepticism,
		domain.ObjectionTiming, domain.ObjectionComplexity,
	}

	notesByType = map[domain.InteractionType][]string{
		domain.InteractionCall: {
			"Ringde kund. Intresserad men vill vänta till hösten. Nämde att grannen nyligen installerat solceller. Undrade om ROT-avdrag. Ska prata med partner.",
			"Uppföljning efter offert. Kunden tycker priset är lite högt, men gillar EaaS-konceptet. Vill ha mer info om batterilösning och garantier.",
			"Initial kontakt. Mycket positiv, har redan gjort research. Frågade om installation under vintern och om vi kan hjälpa med el-certifikat.",
			"Kund tveksam till långt avtal. Förklarade flexibilitet i EaaS. Nämnde att elkostnader fortsätter öka. Ska återkomma nästa vecka.",
		},
		domain.InteractionEmail: {
			"Skickade detaljerad offert med ROI-kalkyl. Inkluderade case från liknande villaägare i området. Föreslog platsbesiktning.",
			"Följde upp konfiguratorbesök. Svarade på frågor om installation, garantier och vad som ingår i serviceavtalet.",
			"Kund mailade frågor om grönt ROT-avdrag och hur det fungerar med EaaS. Skickade utförligt svar med länkar till Skatteverket.",
		},
		domain.InteractionChat: {
			"Chattade via hemsidan. Kund frågade om priser och installationstid. Bokade in telefonsamtal för djupare diskussion.",
			"Livechatt - kund ville veta skillnad mellan köp och EaaS. Förklarade fördelarna. Kund verkade övertygad, bad om offert.",
		},
		domain.InteractionConfigurator: {
			"Kund använde konfigurator. Valde villa, hög elräkning, stor takyta, intresserad av batteri och har elbil. Lämnade kontaktinfo.",
			"Konfiguratorbesök. Medium takyta, medelhög räkning, ingen elbil ännu men planerar köp. Ville ha återkoppling.",
		},
		domain.InteractionMeeting: {
			"Platsbesiktning genomförd. Tak i utmärkt skick, optimal vinkel mot söder. Kund mycket positiv, vill gå vidare med offert.",
			"Möte på kontoret. Gick igenom offert i detalj. Kund nöjd med prissättning, vill diskutera med ekonomisk rådgivare först.",
		},
	}

	summaryLabels = map[domain.InteractionType]string{
		domain.InteractionCall:         "Samtal",
		domain.InteractionEmail:        "E-post",
		domain.InteractionChat:         "Chatt",
		domain.InteractionMeeting:      "Möte",
		domain.InteractionConfigurator: "Konfiguratorbesök",
	}
)

// Dataset is a generated set of leads with their interactions.
type Dataset struct {
	Leads        []domain.Lead
	Interactions []domain.Interaction
	Campaigns    []domain.Campaign
}

// Generator produces leads from an injected random source so runs can be
// reproduced with a fixed seed.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

func NewGenerator(src rand.Source, now time.Time) *Generator {
	return &Generator{rng: rand.New(src), now: now.UTC()}
}

// Dataset generates count leads, each with 0-3 interactions.
func (g *Generator) Dataset(count int, campaigns []domain.Campaign) Dataset {
	ds := Dataset{
		Leads:     make([]domain.Lead, 0, count),
		Campaigns: campaigns,
	}
	for i := 1; i <= count; i++ {
		lead := g.Lead(i)
		ds.Leads = append(ds.Leads, lead)

		n := g.intn(0, 3)
		for j := 0; j < n; j++ {
			ds.Interactions = append(ds.Interactions, g.Interaction(lead.ID, j))
		}
	}
	return ds
}

// Lead generates lead number n with id LEAD-%04d, scored and staged.
func (g *Generator) Lead(n int) domain.Lead {
	firstName := pick(g.rng, firstNames)
	lastName := pick(g.rng, lastNames)
	contactName := firstName + " " + lastName

	lead := domain.Lead{
		ID:                fmt.Sprintf("LEAD-%04d", n),
		CreatedAt:         g.pastTime(90, 0),
		Channel:           pick(g.rng, channelPool),
		Segment:           pick(g.rng, segmentPool),
		Region:            pick(g.rng, domain.Regions),
		SyntheticLocation: pick(g.rng, kommuner) + ", " + pick(g.rng, omraden),
		RoofAreaM2:        g.intn(30, 150),
		AnnualKwh:         g.intn(8000, 35000),
		MonthlyBillSek:    g.intn(600, 4000),
		HeatingType:       pick(g.rng, heatingPool),
		HasEV:             g.chance(0.3),
		IntentSignals:     g.intentSignals(),
		Stage:             domain.StageNew,
		ContactName:       contactName,
		ContactPhone:      phone.NormalizeE164(g.phone()),
		ContactEmail:      g.email(contactName),
	}

	lead.Stage = g.stageFor(scoring.Calculate(lead).BaseScore)

	if lead.Stage != domain.StageNew && g.chance(0.7) {
		touched := g.pastTime(g.intn(1, 30), 0)
		lead.LastTouchAt = &touched
	}
	if lead.Stage != domain.StageSigned && lead.Stage != domain.StageLost && g.chance(0.5) {
		next := g.now.Add(time.Duration(g.intn(1, 7)) * day)
		lead.NextTouchAt = &next
	}

	scored, _ := scoring.Apply(lead, g.now)
	return scored
}

// Interaction generates the index-th interaction of leadID.
func (g *Generator) Interaction(leadID string, index int) domain.Interaction {
	kind := pick(g.rng, domain.InteractionTypes)
	notes := pick(g.rng, notesByType[kind])

	var objections []domain.Objection
	if g.chance(0.4) {
		objections = append(objections, pick(g.rng, objectionPool))
	}
	if g.chance(0.2) {
		second := pick(g.rng, objectionPool)
		if len(objections) == 0 || objections[0] != second {
			objections = append(objections, second)
		}
	}

	summary := summaryLabels[kind] + " med kund. "
	if len(objections) > 0 {
		summary += "Invändningar: " + strings.Join(domain.Strings(objections), ", ") + ". "
	}
	summary += strings.SplitN(notes, ".", 2)[0] + "."

	if len(objections) == 0 {
		objections = []domain.Objection{domain.ObjectionNone}
	}

	return domain.Interaction{
		ID:         fmt.Sprintf("INT-%s-%d", leadID, index),
		LeadID:     leadID,
		Timestamp:  g.pastTime(30, 0),
		Type:       kind,
		RawNotes:   notes,
		AISummary:  summary,
		Objections: objections,
	}
}

// stageFor places higher scores further down the funnel.
func (g *Generator) stageFor(score int) domain.Stage {
	switch {
	case score > 85 && g.chance(0.2):
		return domain.StageSigned
	case score > 80 && g.chance(0.15):
		return domain.StageOfferSent
	case score > 75 && g.chance(0.2):
		return domain.StageSiteVisit
	case score > 70 && g.chance(0.25):
		return domain.StageMeetingBooked
	case score > 60 && g.chance(0.3):
		return domain.StageContacted
	case score < 40 && g.chance(0.15):
		return domain.StageLost
	}
	return domain.StageNew
}

func (g *Generator) intentSignals() []domain.IntentSignal {
	count := g.intn(0, 4)
	signals := make([]domain.IntentSignal, 0, count)
	for i := 0; i < count; i++ {
		signals = append(signals, pick(g.rng, domain.IntentSignals))
	}
	return domain.UniqueSignals(signals)
}

func (g *Generator) phone() string {
	return fmt.Sprintf("07%d-%d %d %d", g.intn(0, 9), g.intn(100, 999), g.intn(10, 99), g.intn(10, 99))
}

func (g *Generator) email(contactName string) string {
	local := strings.ToLower(strings.Replace(contactName, " ", ".", 1))
	return local + "@" + pick(g.rng, emailDomains)
}

// pastTime returns a time between fromDays and toDays days before now.
func (g *Generator) pastTime(fromDays, toDays int) time.Time {
	start := g.now.Add(-time.Duration(fromDays) * day)
	span := time.Duration(fromDays-toDays) * day
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(span))))
}

// intn returns a uniform int in [lo, hi].
func (g *Generator) intn(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}

package domain

// Channel is the acquisition channel a lead came in through.
type Channel string

const (
	ChannelHemsol          Channel = "Hemsol"
	ChannelOrganic         Channel = "Organic"
	ChannelGoogleAds       Channel = "Google Ads"
	ChannelKilowattbutiken Channel = "Kilowattbutiken"
	ChannelReferral        Channel = "Referral"
	ChannelPartner         Channel = "Partner"
)

// Segment is the customer segment.
type Segment string

const (
	SegmentVilla Segment = "B2C Villa"
	SegmentSME   Segment = "B2B SME"
	SegmentBRF   Segment = "BRF"
)

// Region is a Swedish electricity price area.
type Region string

const (
	RegionSE1 Region = "SE1"
	RegionSE2 Region = "SE2"
	RegionSE3 Region = "SE3"
	RegionSE4 Region = "SE4"
)

// HeatingType is the property's primary heating system.
type HeatingType string

const (
	HeatingHeatPump       HeatingType = "Heat Pump"
	HeatingDirectElectric HeatingType = "Direct Electric"
	HeatingDistrict       HeatingType = "District Heating"
	HeatingOil            HeatingType = "Oil"
	HeatingPellets        HeatingType = "Pellets"
)

// Status is the priority tier derived from the lead score.
type Status string

const (
	StatusCold Status = "cold"
	StatusWarm Status = "warm"
	StatusHot  Status = "hot"
)

// IntentSignal is a recorded behavioural event indicating purchase interest.
type IntentSignal string

const (
	SignalVisitedConfigurator      IntentSignal = "visitedConfigurator"
	SignalAskedAboutGreenDeduction IntentSignal = "askedAboutGreenDeduction"
	SignalRequestedCallBack        IntentSignal = "requestedCallBack"
	SignalDownloadedBrochure       IntentSignal = "downloadedBrochure"
	SignalWatchedVideo             IntentSignal = "watchedVideo"
	SignalReturnedToSite           IntentSignal = "returnedToSite"
	SignalSharedWithFamily         IntentSignal = "sharedWithFamily"
)

// InteractionType is the kind of contact event.
type InteractionType string

const (
	InteractionCall         InteractionType = "call"
	InteractionEmail        InteractionType = "email"
	InteractionChat         InteractionType = "chat"
	InteractionConfigurator InteractionType = "configurator"
	InteractionMeeting      InteractionType = "meeting"
)

// Objection is a category of customer reservation detected in notes.
type Objection string

const (
	ObjectionPrice         Objection = "price"
	ObjectionTrust         Objection = "trust"
	ObjectionROISkepticism Objection = "roi_skepticism"
	ObjectionTiming        Objection = "timing"
	ObjectionComplexity    Objection = "complexity"
	ObjectionNone          Objection = "none"
)

var (
	Channels         = []Channel{ChannelHemsol, ChannelOrganic, ChannelGoogleAds, ChannelKilowattbutiken, ChannelReferral, ChannelPartner}
	Segments         = []Segment{SegmentVilla, SegmentSME, SegmentBRF}
	Regions          = []Region{RegionSE1, RegionSE2, RegionSE3, RegionSE4}
	HeatingTypes     = []HeatingType{HeatingHeatPump, HeatingDirectElectric, HeatingDistrict, HeatingOil, HeatingPellets}
	Statuses         = []Status{StatusCold, StatusWarm, StatusHot}
	InteractionTypes = []InteractionType{InteractionCall, InteractionEmail, InteractionChat, InteractionConfigurator, InteractionMeeting}
	IntentSignals    = []IntentSignal{
		SignalVisitedConfigurator,
		SignalAskedAboutGreenDeduction,
		SignalRequestedCallBack,
		SignalDownloadedBrochure,
		SignalWatchedVideo,
		SignalReturnedToSite,
		SignalSharedWithFamily,
	}
)

// Strings converts a slice of string-kinded enum values for validators and
// SQL array parameters.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

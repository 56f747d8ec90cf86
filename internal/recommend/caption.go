package recommend

import (
	"strconv"
	"strings"
)

// CaptionRequest carries everything the caption generator needs. ArtisanName
// and Location may be blank; the byline degrades to neutral phrasing instead
// of rendering placeholder artifacts. SelectionKey picks the template variant
// deterministically, so callers own any desired variety.
type CaptionRequest struct {
	Material     string
	ArtisanName  string
	Location     string
	TimeValue    float64
	TimeUnit     Unit
	SelectionKey int
}

// captionTemplates are the sentence variants filled per request. Each one
// mentions the material descriptor, the handmade nature of the piece and its
// cultural value, which is the structural contract the tests assert.
var captionTemplates = []string{
	"Embrace the artistry of this exquisite {{material}} creation, handmade by {{byline}} over {{time}}. Each detail carries generations of tradition and cultural heritage.",
	"Discover this handwoven {{material}} treasure, shaped by {{byline}} through {{time}}. A timeless celebration of artisanal tradition.",
	"This stunning {{material}} piece was handcrafted by {{byline}} over {{time}} and carries the soul of a living cultural tradition.",
	"From a traditional workshop comes this {{material}} masterpiece, handmade by {{byline}} after {{time}}. Heritage you can hold in your hands.",
	"Experience the warmth of tradition with this handmade {{material}} creation, finished by {{byline}} over {{time}}. Every detail whispers a cultural story.",
	"Unveil the beauty of authentic handicraft with this {{material}} piece, born of {{time}} by {{byline}} and steeped in cultural heritage.",
	"Celebrate heritage craft with this gorgeous handmade {{material}} creation, completed by {{byline}} with {{time}}. More than a product, it is a cultural treasure.",
	"A tribute to timeless tradition, this handcrafted {{material}} piece reflects {{time}} by {{byline}}, honouring skills passed down through generations.",
}

// TemplateCount exposes how many caption variants exist, so callers can cycle
// selection keys without guessing.
func TemplateCount() int {
	return len(captionTemplates)
}

// Caption fills a deterministic marketing caption for the given request.
// Unknown materials fall back to a generic handcrafted descriptor; the only
// failure mode is ErrInvalidInput for a malformed duration.
func Caption(req CaptionRequest) (string, error) {
	if _, err := NormalizeHours(req.TimeValue, req.TimeUnit); err != nil {
		return "", err
	}
	idx := req.SelectionKey % len(captionTemplates)
	if idx < 0 {
		idx += len(captionTemplates)
	}
	replacer := strings.NewReplacer(
		"{{material}}", descriptorFor(req.Material),
		"{{byline}}", byline(req.ArtisanName, req.Location),
		"{{time}}", timePhrase(req.TimeValue, req.TimeUnit),
	)
	return replacer.Replace(captionTemplates[idx]), nil
}

// byline builds the artisan clause, branching on which fields are present so
// blank names or locations never leak into the caption.
func byline(artisanName, location string) string {
	name := strings.TrimSpace(artisanName)
	place := strings.TrimSpace(location)
	switch {
	case name != "" && place != "":
		return "artisan " + name + " of " + place
	case name != "":
		return "artisan " + name
	case place != "":
		return "a skilled artisan from " + place
	}
	return "a skilled artisan"
}

// timePhrase renders the declared duration as a human-readable effort clause,
// e.g. "3 days of dedicated craftsmanship".
func timePhrase(value float64, unit Unit) string {
	amount := strconv.FormatFloat(value, 'f', -1, 64)
	noun := "hours"
	if unit == UnitDays {
		noun = "days"
	}
	if value == 1 {
		noun = strings.TrimSuffix(noun, "s")
	}
	return amount + " " + noun + " of dedicated craftsmanship"
}

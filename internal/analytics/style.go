package analytics

// Style tags a conversation's communication pattern. Tags are independent
// and a conversation may carry several or none.
type Style string

const (
	StyleMediaHeavy   Style = "media-heavy"
	StyleDeepThinker  Style = "deep-thinker"
	StyleQuickChatter Style = "quick-chatter"
	StyleCasual       Style = "casual"
)

// Styles lists every style in display order
var Styles = []Style{StyleMediaHeavy, StyleDeepThinker, StyleQuickChatter, StyleCasual}

const (
	mediaHeavyPercent    = 30
	deepThinkerWords     = 15.0
	deepThinkerQuestions = 15.0
	quickChatterDensity  = 5.0
	quickChatterWords    = 10.0
	casualMinDensity     = 0.1
	casualMaxDensity     = 1.0
)

// StyleInput is what style classification looks at
type StyleInput struct {
	Total           int
	MediaAndSticker int
	AvgWords        float64
	QuestionRatio   float64
	MessagesPerDay  float64
}

// ClassifyStyle returns the styles that apply
func ClassifyStyle(in StyleInput) []Style {
	var styles []Style
	if in.Total == 0 {
		return styles
	}
	// Compared in integers so an exact 30% share qualifies.
	if in.MediaAndSticker*100 >= mediaHeavyPercent*in.Total {
		styles = append(styles, StyleMediaHeavy)
	}
	if in.AvgWords > deepThinkerWords && in.QuestionRatio > deepThinkerQuestions {
		styles = append(styles, StyleDeepThinker)
	}
	if in.MessagesPerDay > quickChatterDensity && in.AvgWords < quickChatterWords {
		styles = append(styles, StyleQuickChatter)
	}
	if in.MessagesPerDay > casualMinDensity && in.MessagesPerDay < casualMaxDensity {
		styles = append(styles, StyleCasual)
	}
	return styles
}

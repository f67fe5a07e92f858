package corpus

import "github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"

// defaultTickers is the built-in ticker universe.
var defaultTickers = []string{
	"NVDA", "AAPL", "GOOG", "MSFT", "TSLA", "AMZN", "META", "JPM", "V", "UNH",
	"NFLX", "AMD", "INTC", "CSCO", "ORCL", "IBM", "CRM", "ADBE", "PYPL", "QCOM",
	"BA", "CAT", "DIS", "GE", "GM", "F", "WMT", "TGT", "HD", "LOW",
}

// defaultTemplates maps each movement category to its headline templates.
// Templates deliberately reuse the category's own adverb so the headline
// vocabulary aligns word-for-word with the label; the two edge categories
// are only partially aligned.
var defaultTemplates = map[movement.Category][]string{
	movement.GainsSlightly: {
		"{ticker} edges up slightly on neutral trading session",
		"{ticker} rises slightly after minor positive news",
		"{ticker} advances slightly on low volume trading",
		"{ticker} climbs slightly following small upgrade",
		"{ticker} moves up slightly in quiet session",
	},
	movement.GainsModestly: {
		"{ticker} gains modestly on encouraging earnings data",
		"{ticker} rises modestly after positive analyst comment",
		"{ticker} advances modestly following good news",
		"{ticker} climbs modestly on sector strength",
		"{ticker} improves modestly after upbeat guidance",
	},
	movement.GainsModerately: {
		"{ticker} gains moderately on strong earnings beat",
		"{ticker} rises moderately after partnership announcement",
		"{ticker} advances moderately following revenue growth",
		"{ticker} climbs moderately on positive outlook",
		"{ticker} rallies moderately after analyst upgrade",
	},
	movement.GainsStrongly: {
		"{ticker} gains strongly on exceptional quarterly results",
		"{ticker} surges strongly after major deal announcement",
		"{ticker} advances strongly following breakthrough news",
		"{ticker} rallies strongly on impressive profit margins",
		"{ticker} climbs strongly after securing key contract",
	},
	movement.GainsSharply: {
		"{ticker} gains sharply on blockbuster earnings surprise",
		"{ticker} surges sharply after transformative acquisition",
		"{ticker} soars sharply following game-changing innovation",
		"{ticker} rallies sharply on explosive revenue growth",
		"{ticker} jumps sharply after landmark partnership deal",
	},
	movement.DeclinesSlightly: {
		"{ticker} edges down slightly on profit-taking",
		"{ticker} dips slightly in light trading session",
		"{ticker} falls slightly on minor concerns",
		"{ticker} slips slightly after neutral news",
		"{ticker} drops slightly on low volume",
	},
	movement.DeclinesModestly: {
		"{ticker} declines modestly on mixed earnings report",
		"{ticker} falls modestly after cautious analyst note",
		"{ticker} drops modestly following weak guidance",
		"{ticker} slips modestly on sector weakness",
		"{ticker} retreats modestly after disappointing data",
	},
	movement.DeclinesModerately: {
		"{ticker} declines moderately on earnings miss",
		"{ticker} falls moderately after analyst downgrade",
		"{ticker} drops moderately following revenue shortfall",
		"{ticker} slides moderately on regulatory concerns",
		"{ticker} weakens moderately after guidance cut",
	},
	movement.DeclinesStrongly: {
		"{ticker} declines strongly on major earnings disappointment",
		"{ticker} falls strongly after losing key customer",
		"{ticker} drops strongly following weak outlook",
		"{ticker} slides strongly on significant concerns",
		"{ticker} tumbles strongly after unexpected bad news",
	},
	movement.DeclinesSharply: {
		"{ticker} declines sharply on catastrophic earnings miss",
		"{ticker} plunges sharply after scandal revelation",
		"{ticker} falls sharply following CEO resignation",
		"{ticker} crashes sharply on regulatory probe announcement",
		"{ticker} tumbles sharply after product recall",
	},
	movement.EdgesUpSlightly: {
		"{ticker} edges up slightly as market remains cautious",
		"{ticker} inches up slightly on mixed sentiment",
		"{ticker} ticks up slightly in range-bound trading",
		"{ticker} rises fractionally in quiet session",
		"{ticker} advances marginally on low volatility",
	},
	movement.EdgesDownSlightly: {
		"{ticker} edges down slightly as investors take pause",
		"{ticker} inches down slightly on uncertainty",
		"{ticker} ticks down slightly in sideways trading",
		"{ticker} falls fractionally in quiet session",
		"{ticker} declines marginally on profit-taking",
	},
}

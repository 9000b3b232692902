package keywords

// Domain vocabularies driving candidate filtering and seed biasing. Closed
// sets, defined at process start.

// domainStopwords lists brand names and generic commerce/filler words. A
// candidate phrase starting or ending with one of these is rejected.
var domainStopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"laptop", "laptops", "computer", "review", "buy", "buying", "purchase",
		"price", "cost", "money", "budget", "deal", "cheap", "expensive",
		"recommend", "suggestion", "looking", "best", "better", "worth",
		"lenovo", "ideapad", "thinkpad", "dell", "hp", "asus", "macbook", "pro", "air",
		"razer", "zenbook", "aspire", "mac", "windows", "intel", "amd", "nvidia",
		"gen", "model", "version", "edition", "series", "device", "machine",
		"amazon", "link", "video", "youtube", "reddit", "post", "comment",
		"http", "https", "www", "com", "specs", "specifications", "thing",
		"need", "give", "want", "know", "think", "thought", "advice", "help", "question",
		"issue", "problem", "fix", "work", "working", "use", "using", "day", "week", "month",
		"year", "time", "people", "guys", "lot", "bit", "way", "actually", "pretty", "really",
		"just", "make", "got", "going", "say", "said", "im", "ive", "dont", "cant",
		"folks", "malaysia", "uk", "usa", "india", "sales", "geekbench", "passmark", "benchmark",
		"kg", "lbs", "products", "electronics", "fact", "savvy",
	} {
		domainStopwords[w] = struct{}{}
	}
}

// negativeConcepts are complaint vocabulary; a positive-bucket candidate
// containing any of these is rejected.
var negativeConcepts = []string{
	"wobble", "wobbling", "glare", "bleed", "bleeding", "crash", "lag", "slow",
	"noise", "loud", "hot", "heat", "overheat", "drain", "poor", "bad", "issue",
	"break", "broken", "flicker", "death", "struggle", "smudge", "fingerprint",
	"bloatware", "flaky", "stutter", "sluggish", "dim", "garbage", "trash", "fan",
}

// techConcepts anchor positive-bucket keywords to hardware vocabulary and
// double as the seed set for positive-pool extraction.
var techConcepts = []string{
	"screen", "display", "panel", "oled", "ips", "hz", "refresh", "nits", "brightness",
	"battery", "charge", "charging", "power", "life", "adapter",
	"keyboard", "trackpad", "mouse", "touch", "typing", "key",
	"cpu", "gpu", "processor", "ram", "memory", "ssd", "storage", "speed", "fast", "performance",
	"build", "chassis", "hinge", "aluminum", "metal", "plastic", "quality", "weight", "light",
	"port", "usb", "hdmi", "thunderbolt", "wifi", "bluetooth", "connect",
	"speaker", "sound", "audio", "volume", "mic", "webcam", "camera",
	"cool", "thermal", "fan", "quiet", "silent", "temperature",
	"game", "fps", "gaming", "render", "export", "code", "compile", "linux",
}

// genericSeeds bias negative-pool extraction toward the complaint areas
// users actually write about.
var genericSeeds = []string{"performance", "battery", "screen"}

// englishStopwords is the usual function-word list applied during n-gram
// candidate generation, the "stop_words=english" of the extraction step.
var englishStopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
		"doing", "don't", "down", "during", "each", "few", "for", "from",
		"further", "had", "hadn't", "has", "hasn't", "have", "haven't",
		"having", "he", "her", "here", "hers", "herself", "him", "himself",
		"his", "how", "i", "if", "in", "into", "is", "isn't", "it", "its",
		"itself", "me", "more", "most", "my", "myself", "no", "nor", "not",
		"of", "off", "on", "once", "only", "or", "other", "ought", "our",
		"ours", "ourselves", "out", "over", "own", "same", "she", "should",
		"shouldn't", "so", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "wasn't", "we", "were", "weren't", "what", "when",
		"where", "which", "while", "who", "whom", "why", "with", "won't",
		"would", "wouldn't", "you", "your", "yours", "yourself", "yourselves",
	} {
		englishStopwords[w] = struct{}{}
	}
}

func isEnglishStopword(w string) bool {
	_, ok := englishStopwords[w]
	return ok
}

func isDomainStopword(w string) bool {
	_, ok := domainStopwords[w]
	return ok
}

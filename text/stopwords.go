package text

import "strings"

// stopWordSets holds per-language stop words keyed by BCP-47 base code.
// A lone stop word is never an informative heading or title in any of
// these languages.
var stopWordSets = map[string]map[string]bool{
	"en": wordSet("the a an and or but of in on at to for with by from is are was were be been this that these those it its as if then than so not no"),
	"de": wordSet("der die das ein eine und oder aber von in auf zu für mit bei aus ist sind war waren sein dies diese jene es als wenn dann nicht kein"),
	"fr": wordSet("le la les un une des et ou mais de dans sur à pour avec par est sont était être ce cette ces il elle si alors ne pas non"),
	"es": wordSet("el la los las un una y o pero de en sobre a para con por es son era ser este esta estos esas si entonces no"),
	"it": wordSet("il la i le un una e o ma di in su a per con da è sono era essere questo questa questi se allora non"),
	"pt": wordSet("o a os as um uma e ou mas de em sobre para com por é são era ser este esta estes se então não"),
	"nl": wordSet("de het een en of maar van in op naar voor met door is zijn was waren dit deze die het als dan niet geen"),
	"ru": wordSet("и в во не что он на я с со как а то все она так его но да ты к у же вы за бы по только ее"),
	"ja": wordSet("の に は を た が で て と し れ さ ある いる も する から な こと として い や など なっ"),
	"zh": wordSet("的 了 和 是 就 都 而 及 與 着 或 一个 没有 我们 你们 他们 的话 在 有 人 这"),
	"ar": wordSet("في من على أن إلى عن هذا هذه ذلك التي الذي هو هي مع كل لم لن ما لا إن أو ثم حتى"),
	"hi": wordSet("का की के में है हैं और से को पर यह वह एक था थे हो ने भी तो ही नहीं"),
}

func wordSet(words string) map[string]bool {
	m := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		m[w] = true
	}
	return m
}

// StopWords returns the stop-word set for a language code such as "en" or
// "en-US". Unknown languages fall back to English.
func StopWords(lang string) map[string]bool {
	base := lang
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		base = lang[:i]
	}
	if set, ok := stopWordSets[strings.ToLower(base)]; ok {
		return set
	}
	return stopWordSets["en"]
}

// IsStopWord reports whether word is a stop word in the given language
func IsStopWord(word, lang string) bool {
	return StopWords(lang)[strings.ToLower(strings.TrimSpace(word))]
}

// SignificantWords returns the lowercase words of s that are not stop
// words and are at least three runes long. Used for heading-relatability
// and keyword overlap scoring.
func SignificantWords(s, lang string) []string {
	stop := StopWords(lang)
	var out []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:!?()[]{}\"'")
		if len([]rune(w)) < 3 || stop[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

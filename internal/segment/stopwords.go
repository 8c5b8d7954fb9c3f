package segment

// stopwords is the combined exclusion set for keyword extraction: common
// English and Russian function words plus spoken-language filler that
// dominates auto-generated transcripts.
var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	words := make(map[string]struct{}, len(englishStopwords)+len(russianStopwords)+len(fillerWords))
	for _, list := range [][]string{englishStopwords, russianStopwords, fillerWords} {
		for _, word := range list {
			words[word] = struct{}{}
		}
	}
	return words
}

var englishStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"couldn", "did", "didn", "do", "does", "doesn", "doing", "don", "down",
	"during", "each", "few", "for", "from", "further", "had", "hadn", "has",
	"hasn", "have", "haven", "having", "he", "her", "here", "hers",
	"herself", "him", "himself", "his", "how", "i", "if", "in", "into",
	"is", "isn", "it", "its", "itself", "just", "me", "more", "most",
	"mustn", "my", "myself", "no", "nor", "not", "now", "of", "off", "on",
	"once", "only", "or", "other", "our", "ours", "ourselves", "out",
	"over", "own", "re", "same", "shan", "she", "should", "shouldn", "so",
	"some", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "wasn",
	"we", "were", "weren", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "won", "would", "wouldn", "you",
	"your", "yours", "yourself", "yourselves",
}

var russianStopwords = []string{
	"и", "в", "во", "не", "что", "он", "на", "я", "с", "со", "как", "а",
	"то", "все", "она", "так", "его", "но", "да", "ты", "к", "у", "же",
	"вы", "за", "бы", "по", "только", "ее", "мне", "было", "вот", "от",
	"меня", "еще", "нет", "о", "из", "ему", "теперь", "когда", "даже",
	"ну", "вдруг", "ли", "если", "уже", "или", "ни", "быть", "был", "него",
	"до", "вас", "нибудь", "опять", "уж", "вам", "ведь", "там", "потом",
	"себя", "ничего", "ей", "может", "они", "тут", "где", "есть", "надо",
	"ней", "для", "мы", "тебя", "их", "чем", "была", "сам", "чтоб", "без",
	"будто", "чего", "раз", "тоже", "себе", "под", "будет", "тогда", "кто",
	"этот", "это", "того", "потому", "этого", "какой", "совсем", "ним",
	"здесь", "этом", "один", "почти", "мой", "тем", "чтобы", "нее",
	"сейчас", "были", "куда", "зачем", "всех", "никогда", "можно", "при",
	"наконец", "два", "об", "другой", "хоть", "после", "над", "больше",
	"тот", "через", "эти", "нас", "про", "всего", "них", "какая", "много",
	"разве", "три", "эту", "моя", "впрочем", "хорошо", "свою", "этой",
	"перед", "иногда", "лучше", "чуть", "том", "нельзя", "такой", "им",
	"более", "всегда", "конечно", "всю", "между",
}

var fillerWords = []string{
	"yeah", "uh", "um", "oh", "like", "just", "so", "know", "think",
	"well", "going", "get", "got", "actually", "okay", "right", "thing",
	"things", "gonna", "wanna",
}

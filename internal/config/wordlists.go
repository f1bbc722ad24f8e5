package config

// DefaultStopWords is the stop-word set applied before stemming. It is the
// usual short English function-word list; datasets with domain noise can
// extend it from the YAML file.
func DefaultStopWords() []string {
	return []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"could", "did", "do", "does", "doing", "down", "during", "each",
		"few", "for", "from", "further", "had", "has", "have", "having",
		"he", "her", "here", "hers", "herself", "him", "himself", "his",
		"how", "i", "if", "in", "into", "is", "it", "its", "itself",
		"just", "me", "more", "most", "my", "myself", "no", "nor", "not",
		"now", "of", "off", "on", "once", "only", "or", "other", "our",
		"ours", "ourselves", "out", "over", "own", "said", "same", "she",
		"should", "so", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself", "yourselves",
	}
}

// DefaultCuratedTokens is the fixed list of discriminative stems that feed
// the PCA reducer and the token-based models. The list was curated offline
// against the source dataset; it is configuration, not a derived artifact.
func DefaultCuratedTokens() []string {
	return []string{
		"trump", "presid", "state", "clinton", "elect", "peopl",
		"report", "hillari", "news", "govern", "american", "vote",
		"campaign", "time", "nation",
	}
}

// Package textsim compares short documents with TF-IDF weighted cosine
// similarity. It is independent from job scoring.
package textsim

import (
	"math"
	"regexp"
	"strings"
)

const minTokenLength = 3

var wordPattern = regexp.MustCompile(`\b[a-z]+\b`)

var stopWords = toSet(
	"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
	"be", "have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "must", "shall", "can", "need",
	"that", "this", "these", "those", "it", "its", "we", "you", "they",
	"what", "which", "who", "whom", "whose", "where", "when", "why", "how",
	"all", "each", "every", "both", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "just", "also", "now", "here", "there", "then", "about", "above",
	"after", "again", "against", "any", "because", "before", "below",
	"between", "down", "during", "if", "into", "through", "under", "until",
	"up", "while", "our", "your", "their", "my", "experience", "work",
	"working", "job", "team", "company", "ability", "strong", "looking",
	"required", "requirements", "preferred", "including", "etc", "years",
)

// Vector is a sparse term vector.
type Vector map[string]float64

// Tokenize lower-cases text and returns its alphabetic words, dropping stop
// words and words shorter than three letters.
func Tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < minTokenLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TermFrequency counts each token and divides by the number of tokens.
func TermFrequency(tokens []string) Vector {
	tf := make(Vector)
	if len(tokens) == 0 {
		return tf
	}
	for _, t := range tokens {
		tf[t]++
	}
	total := float64(len(tokens))
	for t := range tf {
		tf[t] /= total
	}
	return tf
}

// InverseDocumentFrequency weights each term of the corpus by
// ln((n+1)/(df+1)) + 1, where df is the number of documents holding it.
func InverseDocumentFrequency(documents [][]string) Vector {
	idf := make(Vector)
	if len(documents) == 0 {
		return idf
	}

	df := make(map[string]int)
	for _, doc := range documents {
		for term := range toSet(doc...) {
			df[term]++
		}
	}

	n := float64(len(documents))
	for term, freq := range df {
		idf[term] = math.Log((n+1)/(float64(freq)+1)) + 1
	}
	return idf
}

// TFIDF multiplies term frequencies by their idf. Terms unknown to idf get 0.
func TFIDF(tf, idf Vector) Vector {
	out := make(Vector, len(tf))
	for term, v := range tf {
		out[term] = v * idf[term]
	}
	return out
}

// Cosine returns the cosine similarity of two sparse vectors, or 0 when
// either is empty or they share no term.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	dot, shared := 0.0, false
	for term, v := range a {
		if w, ok := b[term]; ok {
			dot += v * w
			shared = true
		}
	}
	if !shared {
		return 0
	}

	magA, magB := magnitude(a), magnitude(b)
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}

// Similarity compares two token sequences as a two-document corpus.
func Similarity(a, b []string) float64 {
	idf := InverseDocumentFrequency([][]string{a, b})
	return Cosine(TFIDF(TermFrequency(a), idf), TFIDF(TermFrequency(b), idf))
}

// Compare tokenizes two texts and returns their Similarity.
func Compare(a, b string) float64 {
	return Similarity(Tokenize(a), Tokenize(b))
}

func magnitude(v Vector) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

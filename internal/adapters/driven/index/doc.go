// Package index holds the term index implementations behind driven.Indexer.
//
//   - tfidf: capped TF-IDF vector space scored by cosine similarity
//   - bm25: Okapi BM25 over punctuation-stripped, stemmed tokens
//
// Both produce a domain.TermModel and a row-aligned domain.WeightMatrix
// that the storage adapters persist together.
package index

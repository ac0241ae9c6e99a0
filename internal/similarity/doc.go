// Package similarity compares TF-IDF vectors pairwise.
//
// It provides cosine similarity, the filtered and sorted pair list,
// the full symmetric similarity matrix and summary statistics for
// one analysis job. Reported similarities are rounded to four decimal
// places; the flagged bit is always evaluated on the reported value.
package similarity

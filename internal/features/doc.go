// Package features turns raw document text into TF-IDF feature vectors.
//
// The stages run in order for one analysis job:
//
//	Normalize -> Tokenizer.Tokenize -> FitVocabulary -> Vectorizer.Transform
//
// Every stage is a pure function of its inputs. A Vocabulary and the
// vectors built from it belong to a single job and are never shared.
package features

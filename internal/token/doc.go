// Package token estimates LLM token counts for text using cheap heuristics.
//
// Two interchangeable strategies are provided, selected at construction
// time:
//
//	est, err := token.New(token.KindEnhanced)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n := est.Estimate(source)
//
// Simple divides the character count by 4. Enhanced additionally weighs
// whitespace-separated words and penalizes punctuation-dense input, which
// tracks real tokenizers more closely on source code.
//
// Both strategies are deterministic, stateless, and safe to call from
// multiple goroutines. They are heuristics: counts differ from any given
// vendor tokenizer, and callers must treat them as sizing estimates only.
package token

package driver

import (
	"context"
	"fmt"

	"github.com/agenthands/faqdesk/internal/core/model"
)

// ListFAQ reads every :Faq node in position order.
func ListFAQ(ctx context.Context, d GraphDriver) ([]model.FaqEntry, error) {
	res, err := d.ExecuteQuery(ctx, ListFAQQuery, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]model.FaqEntry, 0, len(res.Records))
	for i, rec := range res.Records {
		question, _ := rec.Get("question")
		answer, _ := rec.Get("answer")
		keywords, _ := rec.Get("keywords")

		e := model.FaqEntry{
			Question: asString(question),
			Answer:   asString(answer),
		}
		kw, err := asStrings(keywords)
		if err != nil {
			return nil, fmt.Errorf("faq record %d: %w", i, err)
		}
		e.Keywords = kw
		entries = append(entries, e)
	}
	return entries, nil
}

// SaveFAQ writes entries as :Faq nodes keyed by position and removes any
// nodes past the end of the new list.
func SaveFAQ(ctx context.Context, d GraphDriver, entries []model.FaqEntry) error {
	for i, e := range entries {
		params := map[string]interface{}{
			"position": i,
			"question": e.Question,
			"answer":   e.Answer,
			"keywords": e.Keywords,
		}
		if _, err := d.ExecuteQuery(ctx, SaveFAQQuery, params); err != nil {
			return fmt.Errorf("failed to save faq %d: %w", i, err)
		}
	}

	_, err := d.ExecuteQuery(ctx, DeleteFAQFromQuery, map[string]interface{}{"position": len(entries)})
	return err
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asStrings(v interface{}) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("keyword %v is %T, not string", item, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("keywords is %T, not a list", v)
	}
}

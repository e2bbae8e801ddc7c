package driver

const (
	// ListFAQQuery returns every FAQ node in curated order.
	ListFAQQuery = `
		MATCH (f:Faq)
		RETURN f.question AS question, f.answer AS answer, f.keywords AS keywords
		ORDER BY f.position ASC
	`

	SaveFAQQuery = `
		MERGE (f:Faq {position: $position})
		SET f.question = $question,
			f.answer = $answer,
			f.keywords = $keywords
		RETURN f.position AS position
	`

	DeleteFAQFromQuery = `
		MATCH (f:Faq)
		WHERE f.position >= $position
		DETACH DELETE f
	`
)

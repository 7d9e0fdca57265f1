package search

// ParadeDB dialect: the pg_search @@@ operator with paradedb.score
// ordering. Exact match deliberately shares the native SQL so non-
// search operations stay comparable across engines.

var bm25Builders = map[Type]Builder{
	Fulltext: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					paradedb.score(id) AS rank
				FROM products
				WHERE title @@@ $1 OR description @@@ $1 OR brand @@@ $1
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{text, limit},
		}
	},

	// The tantivy query parser understands AND/OR/NOT natively, the
	// expression passes through untouched.
	Boolean: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					paradedb.score(id) AS rank
				FROM products
				WHERE id @@@ paradedb.parse($1)
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{text, limit},
		}
	},

	Field: func(text string, limit int) Query {
		field, term := splitFieldQuery(text)
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					paradedb.score(id) AS rank
				FROM products
				WHERE ` + field + ` @@@ $1
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{term, limit},
		}
	},

	Fuzzy: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					paradedb.score(id) AS rank
				FROM products
				WHERE id @@@ paradedb.match('title', $1, distance => 1)
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{text, limit},
		}
	},

	Exact: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand, 1.0::float4 AS rank
				FROM products
				WHERE title = $1 OR asin = $1
				LIMIT $2`,
			Args: []interface{}{text, limit},
		}
	},
}

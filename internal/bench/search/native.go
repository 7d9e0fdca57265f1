package search

// Vanilla PostgreSQL dialect: tsvector FTS with ts_rank ordering and
// pg_trgm similarity for fuzzy matching.

const nativeCombinedVector = `to_tsvector('english', COALESCE(title, '') || ' ' || COALESCE(description, '') || ' ' || COALESCE(brand, ''))`

var nativeBuilders = map[Type]Builder{
	Fulltext: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					ts_rank(` + nativeCombinedVector + `, plainto_tsquery('english', $1)) AS rank
				FROM products
				WHERE ` + nativeCombinedVector + ` @@ plainto_tsquery('english', $1)
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{text, limit},
		}
	},

	Boolean: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					ts_rank(` + nativeCombinedVector + `, to_tsquery('english', $1)) AS rank
				FROM products
				WHERE ` + nativeCombinedVector + ` @@ to_tsquery('english', $1)
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{booleanToTsquery(text), limit},
		}
	},

	Field: func(text string, limit int) Query {
		field, term := splitFieldQuery(text)
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					ts_rank(to_tsvector('english', ` + field + `), plainto_tsquery('english', $1)) AS rank
				FROM products
				WHERE to_tsvector('english', ` + field + `) @@ plainto_tsquery('english', $1)
				ORDER BY rank DESC
				LIMIT $2`,
			Args: []interface{}{term, limit},
		}
	},

	Fuzzy: func(text string, limit int) Query {
		return Query{
			SQL: `
				SELECT id, asin, title, description, brand,
					similarity(title, $1) AS rank
				FROM products
				WHERE title ILIKE '%' || $1 || '%'
					OR brand ILIKE '%' || $1 || '%'
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

package repository

const (
	listUsersQuery = `
		SELECT id, name, color
		FROM users
	`

	getUserByIDQuery = `
		SELECT id, name, color
		FROM users
		WHERE id = $1
	`

	getUserByNameQuery = `
		SELECT id, name, color
		FROM users
		WHERE name = $1
	`

	insertUserQuery = `
		INSERT INTO users (name, color)
		VALUES ($1, $2)
		RETURNING id, name, color
	`

	renameUserQuery = `
		UPDATE users
		SET name = $1
		WHERE name = $2 AND id = $3
		RETURNING id, name, color
	`

	changeUserColorQuery = `
		UPDATE users
		SET color = $1
		WHERE id = $2
		RETURNING id, name, color
	`

	deleteUserQuery = `
		DELETE FROM users
		WHERE id = $1
	`
)

const (
	// An exact case-insensitive name beats any substring hit.
	findCountryByNameFragmentQuery = `
		SELECT country_code, country_name
		FROM world_countries
		WHERE country_name ILIKE '%' || $1 || '%'
		ORDER BY (LOWER(country_name) = LOWER($1)) DESC
		LIMIT 1
	`

	findCountryByNameQuery = `
		SELECT country_code, country_name
		FROM world_countries
		WHERE country_name = $1
		LIMIT 1
	`

	listVisitedCountryCodesQuery = `
		SELECT country_code
		FROM visited_countries
		WHERE user_id = $1
	`

	insertVisitedCountryQuery = `
		INSERT INTO visited_countries (user_id, country_code)
		VALUES ($1, $2)
		RETURNING user_id, country_code
	`

	deleteVisitedCountryQuery = `
		DELETE FROM visited_countries
		WHERE user_id = $1 AND country_code = $2
	`

	deleteAllVisitedCountriesQuery = `
		DELETE FROM visited_countries
		WHERE user_id = $1
	`
)

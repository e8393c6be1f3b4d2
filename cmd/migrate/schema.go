package main

var dropStatements = []string{
	"DROP TABLE IF EXISTS notification_jobs CASCADE",
	"DROP TABLE IF EXISTS criteria CASCADE",
	"DROP TABLE IF EXISTS listings CASCADE",
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		listing_id    UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title         TEXT             NOT NULL,
		address       TEXT             NOT NULL DEFAULT '',
		city          TEXT             NOT NULL,
		state         TEXT             NOT NULL,
		property_type TEXT             NOT NULL,
		price         BIGINT           NOT NULL CHECK (price >= 0),
		bedrooms      INTEGER          CHECK (bedrooms >= 0),
		bathrooms     DOUBLE PRECISION CHECK (bathrooms >= 0),
		square_feet   INTEGER          CHECK (square_feet >= 0),
		status        TEXT             NOT NULL DEFAULT 'active',
		agent_user_id UUID,
		created_at    TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ      NOT NULL DEFAULT NOW()
	)`,
	"CREATE INDEX IF NOT EXISTS idx_listings_state_status_price ON listings (state, status, price)",
	"CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at, listing_id)",

	`CREATE TABLE IF NOT EXISTS criteria (
		criteria_id    UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		kind           TEXT             NOT NULL CHECK (kind IN ('BUYER_NEED', 'HOT_SHEET')),
		title          TEXT             NOT NULL DEFAULT '',
		property_types TEXT[]           NOT NULL DEFAULT '{}',
		statuses       TEXT[]           NOT NULL DEFAULT '{}',
		state          TEXT,
		city           TEXT,
		min_price      BIGINT           CHECK (min_price >= 0),
		max_price      BIGINT           CHECK (max_price >= 0),
		bedrooms       INTEGER          CHECK (bedrooms >= 0),
		bathrooms      DOUBLE PRECISION CHECK (bathrooms >= 0),
		contact_name   TEXT             NOT NULL DEFAULT '',
		contact_email  TEXT,
		contact_phone  TEXT,
		status         TEXT             NOT NULL DEFAULT 'ACTIVE',
		owner_user_id  UUID,
		created_at     TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ      NOT NULL DEFAULT NOW()
	)`,
	"CREATE INDEX IF NOT EXISTS idx_criteria_kind_status_state ON criteria (kind, status, state)",
	"CREATE INDEX IF NOT EXISTS idx_criteria_created_at ON criteria (created_at, criteria_id)",

	`CREATE TABLE IF NOT EXISTS notification_jobs (
		notification_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		criteria_id     UUID        NOT NULL REFERENCES criteria (criteria_id) ON DELETE CASCADE,
		listing_id      UUID        NOT NULL REFERENCES listings (listing_id) ON DELETE CASCADE,
		channel         TEXT        NOT NULL CHECK (channel IN ('email', 'sms')),
		recipient       TEXT        NOT NULL,
		status          TEXT        NOT NULL DEFAULT 'QUEUED',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (criteria_id, listing_id, channel)
	)`,
}

// statements — итоговый список команд; reset добавляет удаление таблиц в начало.
func statements(reset bool) []string {
	if !reset {
		return schemaStatements
	}
	out := make([]string, 0, len(dropStatements)+len(schemaStatements))
	out = append(out, dropStatements...)
	return append(out, schemaStatements...)
}

package database

const postgresSchema = `
CREATE TABLE IF NOT EXISTS posts (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	excerpt     TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	category    TEXT NOT NULL,
	language    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'DRAFT',
	source      TEXT NOT NULL DEFAULT '',
	sender      TEXT NOT NULL DEFAULT '',
	fingerprint TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_posts_status_created ON posts (status, created_at DESC);

CREATE TABLE IF NOT EXISTS jobs (
	id               UUID PRIMARY KEY,
	post_id          UUID NOT NULL UNIQUE REFERENCES posts(id) ON DELETE CASCADE,
	company          TEXT NOT NULL,
	location         TEXT NOT NULL,
	job_type         TEXT NOT NULL DEFAULT '',
	salary_range     TEXT NOT NULL DEFAULT '',
	application_link TEXT NOT NULL DEFAULT '',
	tags             TEXT[] NOT NULL DEFAULT '{}',
	deadline         TEXT NOT NULL DEFAULT '',
	contact          TEXT NOT NULL DEFAULT '',
	expires_at       TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS posts (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	excerpt     TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	category    TEXT NOT NULL,
	language    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'DRAFT',
	source      TEXT NOT NULL DEFAULT '',
	sender      TEXT NOT NULL DEFAULT '',
	fingerprint TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_status_created ON posts (status, created_at DESC);

CREATE TABLE IF NOT EXISTS jobs (
	id               TEXT PRIMARY KEY,
	post_id          TEXT NOT NULL UNIQUE REFERENCES posts(id) ON DELETE CASCADE,
	company          TEXT NOT NULL,
	location         TEXT NOT NULL,
	job_type         TEXT NOT NULL DEFAULT '',
	salary_range     TEXT NOT NULL DEFAULT '',
	application_link TEXT NOT NULL DEFAULT '',
	tags             TEXT NOT NULL DEFAULT '[]',
	deadline         TEXT NOT NULL DEFAULT '',
	contact          TEXT NOT NULL DEFAULT '',
	expires_at       TIMESTAMP,
	created_at       TIMESTAMP NOT NULL
);
`

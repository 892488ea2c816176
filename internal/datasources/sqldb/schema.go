package sqldb

// schema is the SQLite bootstrap DDL, applied idempotently on connect.
const schema = `
CREATE TABLE IF NOT EXISTS instructors (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	avatar     TEXT NOT NULL DEFAULT '',
	bio        TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS courses (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	slug          TEXT NOT NULL UNIQUE,
	description   TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL,
	tags          TEXT,
	price         INTEGER NOT NULL DEFAULT 0,
	rating        REAL NOT NULL DEFAULT 0,
	student_count INTEGER NOT NULL DEFAULT 0,
	instructor_id INTEGER REFERENCES instructors(id),
	image         TEXT,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_courses_category ON courses(category);
CREATE INDEX IF NOT EXISTS idx_courses_created_at ON courses(created_at);

CREATE TABLE IF NOT EXISTS lessons (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	course_id        INTEGER NOT NULL REFERENCES courses(id),
	title            TEXT NOT NULL,
	slug             TEXT NOT NULL,
	position         INTEGER NOT NULL DEFAULT 0,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	video_url        TEXT NOT NULL DEFAULT '',
	free_preview     INTEGER NOT NULL DEFAULT 0,
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (course_id, slug)
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reviews (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	course_id  INTEGER NOT NULL REFERENCES courses(id),
	user_id    TEXT NOT NULL REFERENCES users(id),
	rating     REAL NOT NULL,
	comment    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (course_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_reviews_course_id ON reviews(course_id);

CREATE TABLE IF NOT EXISTS api_tokens (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL REFERENCES users(id),
	token_hash   TEXT NOT NULL UNIQUE,
	prefix       TEXT NOT NULL,
	name         TEXT,
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_used_at TIMESTAMP,
	expires_at   TIMESTAMP,
	revoked_at   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_filter_prefs (
	user_id    TEXT PRIMARY KEY REFERENCES users(id),
	category   TEXT NOT NULL DEFAULT '',
	search     TEXT NOT NULL DEFAULT '',
	price_min  INTEGER NOT NULL DEFAULT 0,
	price_max  INTEGER NOT NULL DEFAULT 0,
	min_rating REAL NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

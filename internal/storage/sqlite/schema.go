// ABOUTME: SQLite database schema for the relationship tracker
// ABOUTME: Creates tables, indexes, and seeds the dyad and pillar rows
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Dyads scope every other row; a single dyad (id 1) is the deployed default
CREATE TABLE IF NOT EXISTS dyads (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO dyads (id, name) VALUES (1, 'alex-fox');

-- The four fixed emotional-competency pillars (ids are stable)
CREATE TABLE IF NOT EXISTS pillars (
    id INTEGER PRIMARY KEY,
    pillar_key TEXT NOT NULL UNIQUE,
    pillar_name TEXT NOT NULL
);

INSERT OR IGNORE INTO pillars (id, pillar_key, pillar_name) VALUES
    (1, 'SELF_MANAGEMENT', 'Self-Management'),
    (2, 'SELF_AWARENESS', 'Self-Awareness'),
    (3, 'SOCIAL_AWARENESS', 'Social Awareness'),
    (4, 'RELATIONSHIP_MANAGEMENT', 'Relationship Management');

-- Emotion vocabulary: words are case-folded, unique per dyad
CREATE TABLE IF NOT EXISTS emotion_words (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dyad_id INTEGER NOT NULL REFERENCES dyads(id),
    word TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'positive',
    ei_score INTEGER NOT NULL DEFAULT 0,
    sn_score INTEGER NOT NULL DEFAULT 0,
    tf_score INTEGER NOT NULL DEFAULT 0,
    jp_score INTEGER NOT NULL DEFAULT 0,
    definition TEXT,
    user_defined INTEGER NOT NULL DEFAULT 0,
    times_used INTEGER NOT NULL DEFAULT 0,
    first_used DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(dyad_id, word)
);

-- Append-only observation ledger; pillar_id is the denormalized primary
CREATE TABLE IF NOT EXISTS observations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dyad_id INTEGER NOT NULL REFERENCES dyads(id),
    pillar_id INTEGER NOT NULL REFERENCES pillars(id),
    emotion_id INTEGER NOT NULL REFERENCES emotion_words(id),
    content TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Full pillar association set (always a superset of the primary pillar)
CREATE TABLE IF NOT EXISTS observation_pillars (
    observation_id INTEGER NOT NULL REFERENCES observations(id) ON DELETE CASCADE,
    pillar_id INTEGER NOT NULL REFERENCES pillars(id),
    PRIMARY KEY (observation_id, pillar_id)
);

-- Cached axis aggregation snapshots; latest row per dyad is authoritative
CREATE TABLE IF NOT EXISTS type_snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dyad_id INTEGER NOT NULL REFERENCES dyads(id),
    ei_score INTEGER NOT NULL DEFAULT 0,
    sn_score INTEGER NOT NULL DEFAULT 0,
    tf_score INTEGER NOT NULL DEFAULT 0,
    jp_score INTEGER NOT NULL DEFAULT 0,
    calculated_type TEXT NOT NULL,
    confidence REAL NOT NULL DEFAULT 0,
    observation_count INTEGER NOT NULL DEFAULT 0,
    snapshot_date DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_emotion_words_dyad ON emotion_words(dyad_id, word);
CREATE INDEX IF NOT EXISTS idx_observations_dyad ON observations(dyad_id, created_at);
CREATE INDEX IF NOT EXISTS idx_observation_pillars_obs ON observation_pillars(observation_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_dyad ON type_snapshots(dyad_id, snapshot_date);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1

package database

const schema = `
CREATE TABLE IF NOT EXISTS processed_images (
    original_url TEXT PRIMARY KEY,
    processed_url TEXT NOT NULL,
    object_key TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL,
    original_size INTEGER NOT NULL DEFAULT 0,
    processed_size INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_processed_images_type ON processed_images (type, created_at);
`

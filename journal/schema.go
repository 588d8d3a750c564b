package journal

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	ticker TEXT NOT NULL,
	shares INTEGER NOT NULL,
	price REAL NOT NULL,
	commission REAL NOT NULL,
	gross REAL NOT NULL,
	realized_pl REAL NOT NULL,
	date DATETIME NOT NULL,
	executed INTEGER NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	total_value REAL NOT NULL,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
`

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connecting

	conn, err := db.Open(db.TypeSQLite, "nft-contest.db")

SQLite (modernc.org/sqlite) is the default and runs with one connection;
PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema runs the embedded goose migrations:

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times.

# Tables

Token ledger:

  - mint: decimals, supply, mint authority
  - token_account: balance per (address, mint), owner is the transfer authority
  - token_transfer: journal of every movement

Contest program (primary keys are program-derived addresses):

  - counter: the contest sequence singleton
  - contest: configuration, windows, artwork_count, vec_size
  - artwork: one per (contest, artist), carries the vote counter for its id
  - vote_data: one per (contest, voter)

# Relationships

	mint 1──* token_account
	contest 1──* artwork
	contest 1──* vote_data
*/
package db

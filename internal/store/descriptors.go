package store

// baseColumns are present on every table.
var baseColumns = []string{"id", "created_at", "updated_at"}

// Per-entity descriptors. One source of truth for the column names the store
// will accept for sorting, patching and upserting.
var (
	Users = Descriptor{
		Table: "users",
		Columns: append([]string{
			"email",
			"external_auth_sub",
			"name",
			"picture",
			"last_login_at",
		}, baseColumns...),
	}

	RefreshTokens = Descriptor{
		Table: "refresh_tokens",
		Columns: append([]string{
			"user_id",
			"token_hash",
			"expires_at",
			"revoked_at",
		}, baseColumns...),
	}

	Threads = Descriptor{
		Table: "threads",
		Columns: append([]string{
			"user_id",
			"date",
		}, baseColumns...),
	}

	Entries = Descriptor{
		Table: "entries",
		Columns: append([]string{
			"thread_id",
			"encrypted_markdown",
			"written_at",
		}, baseColumns...),
	}

	Metrics = Descriptor{
		Table: "metrics",
		Columns: append([]string{
			"thread_id",
			"asleep_by",
			"awoke_at",
			"sleep_quality",
			"physical_activity",
			"overall_mood",
			"hours_paid_work",
			"hours_personal_work",
			"additional_metrics",
		}, baseColumns...),
	}
)

package repo

// Schema is the catalog DDL understood by both postgres and sqlite.
// Tables are owned by the admin side, this copy bootstraps local and test databases
const Schema = `
create table if not exists channels (
	id bigint primary key,
	name text not null
);
create table if not exists stream_sessions (
	id bigint primary key,
	channel_id bigint not null references channels (id),
	utc_start_time timestamp not null
);
create index if not exists stream_sessions_channel_start on stream_sessions (channel_id, utc_start_time);
`

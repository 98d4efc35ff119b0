// Package env resolves environment templates into concrete .env content.
//
// A template is a sequence of KEY=VALUE lines (blank lines and # comments
// pass through untouched) whose values may embed two kinds of placeholder:
//
//   - ${VAR} topology variables, substituted from the active environment's
//     section of env-config.yaml
//   - kv://path secret references, substituted from the layered secret store
//
// Resolution is a fixed two-stage pipeline, and the order is part of the
// contract: the ${VAR} pass runs first over the raw template, then the kv://
// pass runs over its output, re-applying the ${VAR} pass to each secret value
// before it is emitted. Secret values may therefore themselves carry topology
// placeholders (e.g. redis://${REDIS_HOST}:6379).
//
// ${VAR} tokens with no topology binding are left verbatim: they may be
// legitimate runtime variables outside the topology's vocabulary. Unresolved
// kv:// references, by contrast, are collected across the whole template and
// reported in a single aggregated error.
package env

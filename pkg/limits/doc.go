// Package limits plans polish-run budgets against published provider rate
// limits and tracks daily request usage.
//
// Free-tier quotas are enforced server-side with no grace: a run that sends
// request N+1 burns it on a 429. The planner therefore derives a
// conservative daily request budget from the published requests-per-day,
// requests-per-minute, and tokens-per-minute limits, each reduced by a
// safety margin of one. The pacer spaces requests inside a run so the
// per-minute limits hold, and the usage store persists per-day request
// counts in SQLite so multiple runs on the same day share one budget.
package limits

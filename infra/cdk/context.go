package cdk

// ContextPrefix prefixes every pagecraft key in CDK context (cdk.json and
// cdk.context.json). The app and the CLI must agree on it regardless of the
// bootstrap qualifier in use.
const ContextPrefix = "pagecraft-"

package origin

type Config struct {
	// Dir is a local directory standing in for the bucket.
	Dir string `conf:"dir"`

	// Bucket is the S3 bucket to serve objects from. Takes precedence
	// over Dir.
	Bucket string `conf:"bucket"`

	// Region is the AWS region of the bucket.
	Region string `conf:"region"`

	// Prefix is prepended to every object key.
	Prefix string `conf:"prefix"`
}

/*
Package config loads opstep's settings.

	+-----------+     +------------+     +-----------+     +----------+
	|  defaults | <-- | config file| <-- |    env    | <-- |  flags   |
	+-----------+     +------------+     +-----------+     +----------+

🎯 Purpose:
- Reads an optional config file (.json, .yaml/.yml or .hcl)
- Overlays OPSTEP_* environment variables and OUTPUT_FILE
- Fills in defaults and validates the result

🔄 Flow:
 1. Load picks the file from --config, then OPSTEP_CONFIG
 2. The parser registered for the extension decodes it; unknown fields fail
 3. Environment values replace file values
 4. The caller applies flags, then calls Validate

🔍 Example:

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
*/
package config

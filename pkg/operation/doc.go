/*
Package operation runs one user-supplied transformation against one record.

	+-----------+     +-------------+     +-----------+     +--------+
	|  argv[1]  | --> |   decode    | --> | Transform | --> |  sink  |
	|  (JSON)   |     | (record.*)  |     | (working  |     | stdout |
	+-----------+     +-------------+     |  record)  |     |  file  |
	                                      +-----------+     +--------+

🎯 Purpose:
- Decode the payload into the indexed or remaining record shape
- Seed a working record and let the transform edit it
- Encode the result and write it to the sink exactly once

🔄 Failure modes:
1. Malformed payload: record.MalformedInputError, nothing is written
2. Missing or placeholder transform: UnimplementedOperationError, nothing is written
3. Transform returns an error: fatal, nothing is written
4. error_message set on the record: written like any other result
5. Sink failure: sink.WriteError

🔍 Example:

	op, _ := operation.New(operation.Options{
		Name: "copy",
		Indexed: func(ctx context.Context, in *record.IndexedInput, work *record.IndexedOutput) error {
			work.NewContent = in.FullContent
			return nil
		},
	})
	runner, _ := operation.NewRunner(operation.RunnerOptions{
		Operation: op,
		Sink:      sink.New(os.Getenv("OUTPUT_FILE"), os.Stdout),
	})
	_, err := runner.Run(ctx, os.Args)
*/
package operation
